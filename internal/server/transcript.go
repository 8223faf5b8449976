package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/encode"
	"github.com/studenthub-io/studenthub/internal/enroll"
	"github.com/studenthub-io/studenthub/internal/llm"
)

// extractTranscript accepts a multipart upload, encodes it, runs the
// extraction backend and returns both the raw fields and a reconciled
// new-student draft. Nothing is persisted here; the operator reviews the
// draft and submits it through the normal create path.
func (s *Server) extractTranscript(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, common.WrapError(common.ErrInvalidInput, "file field is required"))
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, common.WrapError(common.ErrEncoding, err.Error()))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, common.WrapError(common.ErrEncoding, err.Error()))
		return
	}

	uri, err := encode.EncodeBytes(mimeType, data)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, _, err := s.extractor.ExtractTranscript(c.Request.Context(), llm.ExtractRequest{DocumentURI: uri})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fields": fields,
		"draft":  enroll.DraftFromTranscript(fields),
	})
}

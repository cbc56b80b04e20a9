package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iammorganparry/rewind/internal/models"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AddRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  models.AddRequest{Type: models.EntryTypeNote, Title: "t", Content: "c"},
		},
		{
			name:    "missing title and content",
			req:     models.AddRequest{Type: models.EntryTypeNote},
			wantErr: "title is required; content is required",
		},
		{
			name:    "unknown type",
			req:     models.AddRequest{Type: "photo", Title: "t", Content: "c"},
			wantErr: "type must be one of: clipboard file screenshot code note",
		},
		{
			name:    "bad image url",
			req:     models.AddRequest{Type: models.EntryTypeScreenshot, Title: "t", Content: "c", ImageURL: "not a url"},
			wantErr: "imageurl must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

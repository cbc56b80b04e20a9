package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPrivateTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tags", "  plain note ", "plain note"},
		{"inline", "token <private>sk-123</private> used", "token  used"},
		{"multiline", "before\n<private>\nsecret\n</private>\nafter", "before\n\nafter"},
		{"case insensitive", "a <PRIVATE>x</Private> b", "a  b"},
		{"two blocks", "<private>a</private>keep<private>b</private>", "keep"},
		{"unclosed", "a <private>b", "a <private>b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPrivateTags(tt.in))
		})
	}
}

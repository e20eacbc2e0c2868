// pkg/style/style_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test that the shared styles preserve their content when rendered

package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattcuento/dotfiles-tool/pkg/style"
)

func TestStyles_RenderPreservesContent(t *testing.T) {
	tests := []struct {
		name  string
		style interface{ Render(...string) string }
	}{
		{"Success", style.Success},
		{"Warning", style.Warning},
		{"Error", style.Error},
		{"Title", style.Title},
		{"Bold", style.Bold},
		{"Subtle", style.Subtle},
		{"Path", style.Path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style.Render("some text"), "some text")
		})
	}
}

func TestPath_RendersFilesystemPaths(t *testing.T) {
	rendered := style.Path.Render("/home/user/dotfiles/.zshrc")
	assert.Contains(t, rendered, "/home/user/dotfiles/.zshrc")
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, "✓", style.GlyphPass)
	assert.Equal(t, "⚠", style.GlyphWarn)
	assert.Equal(t, "✗", style.GlyphFail)
}

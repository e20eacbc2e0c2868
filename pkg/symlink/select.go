package symlink

import (
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// Choose picks a linker at runtime. GNU Stow is preferred when requested and
// installed; otherwise the native manual strategy is used.
func Choose(fsys types.FS, preferStow bool) Linker {
	logger := logging.GetLogger("symlink")

	if preferStow {
		stow := NewStow()
		if stow.IsAvailable() {
			logger.Debug().Str("linker", stow.Name()).Msg("Selected linker")
			return stow
		}
		logger.Info().Msg("GNU Stow not installed, falling back to manual symlinks")
	}

	manual := NewManual(fsys)
	logger.Debug().Str("linker", manual.Name()).Msg("Selected linker")
	return manual
}

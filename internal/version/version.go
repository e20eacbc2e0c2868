package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/mattcuento/dotfiles-tool/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/mattcuento/dotfiles-tool/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/mattcuento/dotfiles-tool/internal/version.Date={{.Date}}
)

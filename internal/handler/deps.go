package handler

import (
	"context"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/live"
	"cryptohub/internal/app/navbar"
	"cryptohub/internal/app/storage"
	"cryptohub/internal/configs"
	"cryptohub/internal/pkg/logx"
)

// AppDeps are the shared services every handler is built from.
type AppDeps struct {
	Config   *configs.AppConfig
	Manager  *live.Manager
	Sessions auth.Store
	Assets   storage.AssetService

	// Version is shown in the sidebar footer.
	Version string
}

// navbarOptions resolves the branding for one page or live session. A logo that cannot be
// resolved falls back to the navbar default.
func (d *AppDeps) navbarOptions(ctx context.Context) navbar.Options {
	opts := navbar.Options{
		Brand:   d.Config.BrandName,
		Version: d.Version,
	}

	if d.Assets == nil {
		return opts
	}

	logoURL, err := d.Assets.URL(ctx, d.Config.LogoKey)
	if err != nil {
		logx.Error(err, "Failed to resolve logo URL, using default", "key", d.Config.LogoKey)
		return opts
	}
	opts.LogoURL = logoURL

	return opts
}

package notify

import (
	"context"

	"propmart/config"
)

// ConfigAdminResolver reads the admin recipient set from configuration. It is
// injected into the fan-out rather than read globally, so deployments can
// swap in a directory-backed resolver without touching the core.
type ConfigAdminResolver struct{}

func (ConfigAdminResolver) ListAdminRecipients(ctx context.Context) []string {
	return config.AppConfig.AdminFCMTokens
}

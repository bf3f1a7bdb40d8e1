package sitecms

import "github.com/nawras-digital/sitecms/internal/runtimeconfig"

var (
	ErrMailEndpointRequired    = runtimeconfig.ErrMailEndpointRequired
	ErrMailSenderRequired      = runtimeconfig.ErrMailSenderRequired
	ErrUploadEndpointRequired  = runtimeconfig.ErrUploadEndpointRequired
	ErrVisitDedupWindowInvalid = runtimeconfig.ErrVisitDedupWindowInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	HTTPConfig    = runtimeconfig.HTTPConfig
	CacheConfig   = runtimeconfig.CacheConfig
	VisitsConfig  = runtimeconfig.VisitsConfig
	MailConfig    = runtimeconfig.MailConfig
	UploadConfig  = runtimeconfig.UploadConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	SeedConfig    = runtimeconfig.SeedConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

package cmsbootstrap

import "github.com/goliatone/go-cms-bootstrap/internal/runtimeconfig"

var (
	ErrTabsModeInvalid              = runtimeconfig.ErrTabsModeInvalid
	ErrTabsPreferenceKeyRequired    = runtimeconfig.ErrTabsPreferenceKeyRequired
	ErrTabsMaxDepthInvalid          = runtimeconfig.ErrTabsMaxDepthInvalid
	ErrCarouselIntervalInvalid      = runtimeconfig.ErrCarouselIntervalInvalid
	ErrCarouselImageTypeInvalid     = runtimeconfig.ErrCarouselImageTypeInvalid
	ErrCarouselFeatureRequiredBlock = runtimeconfig.ErrCarouselFeatureRequiredBlock
	ErrStorageProviderUnknown       = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown        = runtimeconfig.ErrStorageDialectUnknown
	ErrCacheTTLInvalid              = runtimeconfig.ErrCacheTTLInvalid
	ErrMountFeatureRequired         = runtimeconfig.ErrMountFeatureRequired
	ErrMountElementRequired         = runtimeconfig.ErrMountElementRequired
	ErrActivityRequiresCommands     = runtimeconfig.ErrActivityRequiresCommands
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
	ErrRoutesGroupRequiresConfig    = runtimeconfig.ErrRoutesGroupRequiresConfig
	ErrCommandsTimeoutInvalid       = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrAccessModeUnknown            = runtimeconfig.ErrAccessModeUnknown
)

type (
	Config         = runtimeconfig.Config
	TabsConfig     = runtimeconfig.TabsConfig
	CarouselConfig = runtimeconfig.CarouselConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	RoutesConfig   = runtimeconfig.RoutesConfig
	ThemeConfig    = runtimeconfig.ThemeConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

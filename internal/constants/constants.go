package constants

const (
	Version        = `0.1.0`
	AppName        = `tome`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `/.tome/`
	ConfigDirEnv   = `TOME_CONFIG_DIR`
)

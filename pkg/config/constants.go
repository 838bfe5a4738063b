package config

const (
	EnvPrefix = "MERODOCTOR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "MERODOCTOR_APP_ENV"
	EnvPort     = "MERODOCTOR_APP_PORT"
	EnvRedisURL = "MERODOCTOR_REDIS_URL"

	EnvDBDSN  = "MERODOCTOR_DB_DSN"
	EnvDBHost = "MERODOCTOR_DB_HOST"
	EnvDBUser = "MERODOCTOR_DB_USER"
	EnvDBName = "MERODOCTOR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

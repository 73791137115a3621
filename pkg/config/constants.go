package config

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "COMISSOES_APP_ENV"
	EnvPort     = "COMISSOES_APP_PORT"
	EnvDBDSN    = "COMISSOES_DB_DSN"
	EnvDBHost   = "COMISSOES_DB_HOST"
	EnvDBUser   = "COMISSOES_DB_USER"
	EnvDBName   = "COMISSOES_DB_NAME"
	EnvRedisURL = "COMISSOES_REDIS_URL"

	EnvDefaultCommissionPercent = "COMISSOES_COMMISSION_DEFAULT_PERCENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

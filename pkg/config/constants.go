package config

const (
	EnvPrefix = "ocprovider"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "OCPROVIDER_DB_DSN"
	EnvDBHost = "OCPROVIDER_DB_HOST"
	EnvDBUser = "OCPROVIDER_DB_USER"
	EnvDBName = "OCPROVIDER_DB_NAME"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

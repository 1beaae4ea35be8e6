package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	MercadoPago MercadoPago `envPrefix:"MERCADOPAGO_"`
	Auth        Auth        `envPrefix:"AUTH_"`
	S3          S3          `envPrefix:"S3_"`
	Geocoding   Geocoding   `envPrefix:"GEOCODING_"`
	Stripe      Stripe      `envPrefix:"STRIPE_"`
}

type MercadoPago struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.mercadopago.com"`
	AccessToken   string `env:"ACCESS_TOKEN"`
	PublicKey     string `env:"PUBLIC_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

// Auth points at the external users service that owns OAuth redirects and
// session tokens.
type Auth struct {
	ApiURL     string `env:"API_URL"`
	ApiKey     string `env:"API_KEY"`
	CookieName string `env:"COOKIE_NAME" envDefault:"session_token"`
}

type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

type Geocoding struct {
	GoogleApiKey string `env:"GOOGLE_API_KEY"`
}

type Stripe struct {
	PublishableKey string `env:"PUBLISHABLE_KEY"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

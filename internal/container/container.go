package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/config"
	"github.com/hrushireddy/tyredetect-api/internal/inference"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
	"github.com/hrushireddy/tyredetect-api/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	mailSender      mailer.Sender
	inferenceClient *inference.Client
)

func SetConfig(c *config.Config)       { cfg = c }
func GetConfig() *config.Config        { return cfg }
func SetLogger(l *logrus.Logger)       { logger = l }
func GetLogger() *logrus.Logger        { return logger }
func SetPGPool(p *pgxpool.Pool)        { pgPool = p }
func GetPGPool() *pgxpool.Pool         { return pgPool }
func SetRedis(r *redis.Client)         { redisClient = r }
func GetRedis() *redis.Client          { return redisClient }
func SetJWT(m *helpers.JWTManager)     { jwtManager = m }
func GetJWT() *helpers.JWTManager      { return jwtManager }
func SetMailer(m mailer.Sender)        { mailSender = m }
func GetMailer() mailer.Sender         { return mailSender }
func SetInference(c *inference.Client) { inferenceClient = c }
func GetInference() *inference.Client  { return inferenceClient }

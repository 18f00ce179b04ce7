package config

import (
	"io"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyServerPort   = errors.New("server port is not specified")
	ErrNegativeDelay     = errors.New("delay must not be negative")
	defaultOpponentDelay = time.Second
	defaultResetDelay    = 3 * time.Second
)

type ServerConfig struct {
	Port              string        `yaml:"port" env:"SERVER_PORT"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT"`
}

// GameConfig holds the pacing and end-of-game policy of a session.
type GameConfig struct {
	OpponentDelay time.Duration `yaml:"opponent_delay" env:"OPPONENT_DELAY"`
	DrawAutoReset bool          `yaml:"draw_auto_reset" env:"DRAW_AUTO_RESET"`
	WinAutoReset  bool          `yaml:"win_auto_reset" env:"WIN_AUTO_RESET"`
	ResetDelay    time.Duration `yaml:"reset_delay" env:"RESET_DELAY"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
		},
		Game: GameConfig{
			OpponentDelay: defaultOpponentDelay,
			DrawAutoReset: true,
			ResetDelay:    defaultResetDelay,
		},
		Log: LogConfig{Level: "info"},
	}
}

// New reads the yaml file on top of Default and then applies environment
// overrides.
func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "read env overrides")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port == "" {
		return ErrEmptyServerPort
	}
	if c.Game.OpponentDelay < 0 {
		return errors.WithMessage(ErrNegativeDelay, "opponent_delay")
	}
	if c.Game.ResetDelay < 0 {
		return errors.WithMessage(ErrNegativeDelay, "reset_delay")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.WithMessage(err, "log level")
	}
	return nil
}

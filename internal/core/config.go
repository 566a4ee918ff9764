package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the simulation
// and its supporting tools.
type Config struct {
	// Full path to file to which logs will be written. Blank will write to stdout.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`

	Database   DatabaseConfig   `mapstructure:"database"`
	Character  CharacterConfig  `mapstructure:"character"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Input      InputConfig      `mapstructure:"input"`
	Montages   []MontageConfig  `mapstructure:"montages"`
	Debugging  DebuggingConfig  `mapstructure:"debugging"`
}

type DatabaseConfig struct {
	// Either sqlite or postgres.
	Engine string `mapstructure:"engine"`
	// Path to the database file when using the sqlite engine.
	Filename string `mapstructure:"filename"`
	// Hostname of the Postgres database instance.
	Host string `mapstructure:"host"`
	// Port on host on which the Postgres instance is accepting connections.
	Port int `mapstructure:"port"`
	// Name of the database in Postgres.
	Name string `mapstructure:"name"`
	// Username and password of a user with full RW privileges to Name.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Set to verify-full if the Postgres instance supports SSL.
	SSLMode string `mapstructure:"sslmode"`
}

// CharacterConfig holds the tuning values for the player character.
type CharacterConfig struct {
	// Name under which the character's state is persisted.
	Name string `mapstructure:"name"`
	// Multiplier applied to each zoom input before it is added to the zoom factor.
	ZoomRate float64 `mapstructure:"zoom_rate"`
	// Field of view at zoom factor 0 and 1 respectively.
	MaxFOV float64 `mapstructure:"max_fov"`
	MinFOV float64 `mapstructure:"min_fov"`
	// Socket a drawn weapon is attached to.
	HandSocket string `mapstructure:"hand_socket"`
	// Socket a sheathed weapon is attached to.
	SheathSocket string `mapstructure:"sheath_socket"`
	// Degrees per second the character turns towards its movement direction.
	RotationRate float64 `mapstructure:"rotation_rate"`
	// Units per second applied for a full movement input.
	WalkSpeed float64 `mapstructure:"walk_speed"`
	// Initial vertical velocity of a jump.
	JumpVelocity float64 `mapstructure:"jump_velocity"`
	EquipMontage  string `mapstructure:"equip_montage"`
	AttackMontage string `mapstructure:"attack_montage"`
}

type SimulationConfig struct {
	// Number of animation ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// Pace ticks against the wall clock instead of running as fast as possible.
	Realtime bool `mapstructure:"realtime"`
}

type InputConfig struct {
	// Maps input action names to the character handler that services them.
	Bindings map[string]string `mapstructure:"bindings"`
}

// MontageConfig describes a named animation clip and its addressable sections.
type MontageConfig struct {
	Name     string          `mapstructure:"name"`
	Sections []SectionConfig `mapstructure:"sections"`
}

type SectionConfig struct {
	Name string `mapstructure:"name"`
	// Length of the section in seconds.
	Length   float64        `mapstructure:"length"`
	Notifies []NotifyConfig `mapstructure:"notifies"`
}

// NotifyConfig is an event fired At seconds into a section.
type NotifyConfig struct {
	Name string  `mapstructure:"name"`
	At   float64 `mapstructure:"at"`
}

type DebuggingConfig struct {
	// Enable extra info-providing mechanisms.
	Enabled bool `mapstructure:"enabled"`
	// Port on which a pprof server will be started if debug mode is enabled.
	PprofPort int `mapstructure:"pprof_port"`
	// Dump the character and weapon state after every dispatched action.
	StateDumpsEnabled bool `mapstructure:"state_dumps_enabled"`
	// Enable database-level query logging.
	DatabaseLoggingEnabled bool `mapstructure:"database_logging_enabled"`
}

const envVarPrefix = "SLASH"

// SetDefaults registers the default value of every option on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.filename", "slash.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "slash")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("character.name", "Slash")
	v.SetDefault("character.zoom_rate", 4.0)
	v.SetDefault("character.max_fov", 90.0)
	v.SetDefault("character.min_fov", 60.0)
	v.SetDefault("character.hand_socket", "RightHandSocket")
	v.SetDefault("character.sheath_socket", "WeaponSocket")
	v.SetDefault("character.rotation_rate", 360.0)
	v.SetDefault("character.walk_speed", 600.0)
	v.SetDefault("character.jump_velocity", 420.0)
	v.SetDefault("character.equip_montage", "EquipMontage")
	v.SetDefault("character.attack_montage", "AttackMontage")

	v.SetDefault("simulation.tick_rate", 60)

	v.SetDefault("debugging.pprof_port", 4000)
}

// LoadConfig reads config.yaml from configPath, applies defaults for anything
// left unset and allows every option to be overridden through the environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("no config file in path %s", configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, database.host can be set using: SLASH_DATABASE_HOST
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config object: %w", err)
	}
	config.applyFallbacks()
	return config, nil
}

// applyFallbacks fills in the options that viper can't express as simple defaults.
func (c *Config) applyFallbacks() {
	if len(c.Input.Bindings) == 0 {
		c.Input.Bindings = DefaultBindings()
	}
	if len(c.Montages) == 0 {
		c.Montages = DefaultMontages()
	}
	if c.Simulation.TickRate <= 0 {
		c.Simulation.TickRate = 60
	}
}

// DefaultBindings maps each input action onto the handler of the same name.
func DefaultBindings() map[string]string {
	return map[string]string{
		"Move":   "Move",
		"Look":   "Look",
		"Jump":   "Jump",
		"Zoom":   "Zoom",
		"Equip":  "Equip",
		"Attack": "Attack",
		"Drop":   "Drop",
	}
}

// DefaultMontages returns the equip and attack montages the character expects.
func DefaultMontages() []MontageConfig {
	return []MontageConfig{
		{
			Name: "EquipMontage",
			Sections: []SectionConfig{
				{Name: "Equip", Length: 0.8, Notifies: []NotifyConfig{{Name: "Arm", At: 0.35}, {Name: "ArmEnd", At: 0.8}}},
				{Name: "Unequip", Length: 0.8, Notifies: []NotifyConfig{{Name: "Disarm", At: 0.45}}},
			},
		},
		{
			Name: "AttackMontage",
			Sections: []SectionConfig{
				{Name: "Attack1", Length: 1.0, Notifies: []NotifyConfig{
					{Name: "EnableCollision", At: 0.3},
					{Name: "DisableCollision", At: 0.6},
					{Name: "AttackEnd", At: 1.0},
				}},
				{Name: "Attack2", Length: 1.2, Notifies: []NotifyConfig{
					{Name: "EnableCollision", At: 0.4},
					{Name: "DisableCollision", At: 0.7},
					{Name: "AttackEnd", At: 1.2},
				}},
			},
		},
	}
}

const databaseURITemplate = "host=%s port=%d dbname=%s user=%s password=%s sslmode=%s"

// DatabaseURL returns a database URL generated from the provided config values.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		databaseURITemplate,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.Username,
		c.Database.Password,
		c.Database.SSLMode,
	)
}

// TickInterval is the wall-clock duration of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Simulation.TickRate)
}

// DataSource returns the connection string for the configured database engine.
func (c *Config) DataSource() string {
	if c.Database.Engine == "postgres" {
		return c.DatabaseURL()
	}
	return c.Database.Filename
}

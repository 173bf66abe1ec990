// Package config handles dice tray configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tavern-dice/internal/physics"
	"github.com/Faultbox/tavern-dice/internal/roll"
)

// Config holds all tray settings.
type Config struct {
	Roll    RollConfig    `yaml:"roll"`
	Dice    DiceConfig    `yaml:"dice"`
	Launch  LaunchConfig  `yaml:"launch"`
	Physics PhysicsConfig `yaml:"physics"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// RollConfig describes the roll the command line performs.
type RollConfig struct {
	Notation  string  `yaml:"notation" env:"TAVERN_DICE_ROLL"`
	Power     float32 `yaml:"power" env:"TAVERN_DICE_POWER"` // negative draws at random
	Spin      float32 `yaml:"spin" env:"TAVERN_DICE_SPIN"`   // negative draws at random
	Seed      uint64  `yaml:"seed" env:"TAVERN_DICE_SEED"`   // 0 seeds from the runtime
	FrameRate int     `yaml:"frame_rate"`
	MaxFrames int     `yaml:"max_frames" env:"TAVERN_DICE_MAX_FRAMES"`
}

// DiceConfig holds dice limits and settlement tuning.
type DiceConfig struct {
	MaxDice         int     `yaml:"max_dice" env:"TAVERN_DICE_MAX_DICE"`
	SettleThreshold float32 `yaml:"settle_threshold" env:"TAVERN_DICE_SETTLE_THRESHOLD"`
	SettleFrames    int     `yaml:"settle_frames" env:"TAVERN_DICE_SETTLE_FRAMES"`
	SettlingEnergy  float32 `yaml:"settling_energy"`
}

// LaunchConfig holds throw placement and strength ranges.
type LaunchConfig struct {
	Spread        float32 `yaml:"spread"`
	InitialHeight float32 `yaml:"initial_height"`
	HeightJitter  float32 `yaml:"height_jitter"`
	ImpulseOffset float32 `yaml:"impulse_offset"`
	MinForce      float32 `yaml:"min_force"`
	MaxForce      float32 `yaml:"max_force"`
	ForceJitter   float32 `yaml:"force_jitter"`
	MinTorque     float32 `yaml:"min_torque"`
	MaxTorque     float32 `yaml:"max_torque"`
	TorqueJitter  float32 `yaml:"torque_jitter"`
}

// PhysicsConfig holds simulation settings.
type PhysicsConfig struct {
	Gravity         float32          `yaml:"gravity" env:"TAVERN_DICE_GRAVITY"`
	FixedStep       float32          `yaml:"fixed_step"`
	MaxSubSteps     int              `yaml:"max_sub_steps"`
	MaxFrameTime    float32          `yaml:"max_frame_time"`
	WallDistance    float32          `yaml:"wall_distance"`
	LinearDamping   float32          `yaml:"linear_damping"`
	AngularDamping  float32          `yaml:"angular_damping"`
	SleepSpeedLimit float32          `yaml:"sleep_speed_limit"`
	SleepTimeLimit  float32          `yaml:"sleep_time_limit"`
	Floor           physics.Material `yaml:"floor"`
	Wall            physics.Material `yaml:"wall"`
	Dice            physics.Material `yaml:"dice"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume" env:"TAVERN_DICE_MASTER_VOLUME"`
	SFXVolume    float32 `yaml:"sfx_volume" env:"TAVERN_DICE_SFX_VOLUME"`
	Muted        bool    `yaml:"muted" env:"TAVERN_DICE_MUTED"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"TAVERN_DICE_LOG_LEVEL"`
	LogFile string `yaml:"log_file" env:"TAVERN_DICE_LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	r := roll.DefaultConfig()
	w := physics.DefaultConfig()
	return &Config{
		Roll: RollConfig{
			Notation:  "1d20",
			Power:     -1,
			Spin:      -1,
			FrameRate: 60,
			MaxFrames: 60 * 60,
		},
		Dice: DiceConfig{
			MaxDice:         r.MaxDice,
			SettleThreshold: r.SettleThreshold,
			SettleFrames:    r.SettleFrames,
			SettlingEnergy:  r.SettlingEnergy,
		},
		Launch: LaunchConfig{
			Spread:        r.Spread,
			InitialHeight: r.InitialHeight,
			HeightJitter:  r.HeightJitter,
			ImpulseOffset: r.ImpulseOffset,
			MinForce:      r.MinForce,
			MaxForce:      r.MaxForce,
			ForceJitter:   r.ForceJitter,
			MinTorque:     r.MinTorque,
			MaxTorque:     r.MaxTorque,
			TorqueJitter:  r.TorqueJitter,
		},
		Physics: PhysicsConfig{
			Gravity:         w.Gravity,
			FixedStep:       r.FixedStep,
			MaxSubSteps:     r.MaxSubSteps,
			MaxFrameTime:    r.MaxFrameTime,
			WallDistance:    w.WallDistanceX,
			LinearDamping:   r.LinearDamping,
			AngularDamping:  r.AngularDamping,
			SleepSpeedLimit: r.SleepSpeedLimit,
			SleepTimeLimit:  r.SleepTimeLimit,
			Floor:           w.Floor,
			Wall:            w.Wall,
			Dice:            w.Dice,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Dice.MaxDice <= 0 {
		errs = append(errs, fmt.Errorf("dice.max_dice must be positive, got %d", c.Dice.MaxDice))
	}
	if c.Dice.SettleThreshold < 0 {
		errs = append(errs, fmt.Errorf("dice.settle_threshold must not be negative, got %v", c.Dice.SettleThreshold))
	}
	if c.Dice.SettleFrames <= 0 {
		errs = append(errs, fmt.Errorf("dice.settle_frames must be positive, got %d", c.Dice.SettleFrames))
	}
	if c.Physics.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("physics.fixed_step must be positive, got %v", c.Physics.FixedStep))
	}
	if c.Physics.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_frame_time must be positive, got %v", c.Physics.MaxFrameTime))
	}
	if c.Physics.MaxSubSteps <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_sub_steps must be positive, got %d", c.Physics.MaxSubSteps))
	}
	if c.Launch.MaxForce < c.Launch.MinForce {
		errs = append(errs, errors.New("launch.max_force is below launch.min_force"))
	}
	if c.Launch.MaxTorque < c.Launch.MinTorque {
		errs = append(errs, errors.New("launch.max_torque is below launch.min_torque"))
	}
	if c.Roll.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("roll.frame_rate must be positive, got %d", c.Roll.FrameRate))
	}
	return errors.Join(errs...)
}

// RollEngine returns the roll engine settings.
func (c *Config) RollEngine() roll.Config {
	return roll.Config{
		MaxDice:         c.Dice.MaxDice,
		SettleThreshold: c.Dice.SettleThreshold,
		SettleFrames:    c.Dice.SettleFrames,
		SettlingEnergy:  c.Dice.SettlingEnergy,

		FixedStep:    c.Physics.FixedStep,
		MaxSubSteps:  c.Physics.MaxSubSteps,
		MaxFrameTime: c.Physics.MaxFrameTime,

		Spread:        c.Launch.Spread,
		InitialHeight: c.Launch.InitialHeight,
		HeightJitter:  c.Launch.HeightJitter,
		ImpulseOffset: c.Launch.ImpulseOffset,

		MinForce:     c.Launch.MinForce,
		MaxForce:     c.Launch.MaxForce,
		ForceJitter:  c.Launch.ForceJitter,
		MinTorque:    c.Launch.MinTorque,
		MaxTorque:    c.Launch.MaxTorque,
		TorqueJitter: c.Launch.TorqueJitter,

		LinearDamping:   c.Physics.LinearDamping,
		AngularDamping:  c.Physics.AngularDamping,
		SleepSpeedLimit: c.Physics.SleepSpeedLimit,
		SleepTimeLimit:  c.Physics.SleepTimeLimit,
	}
}

// World returns the rigid world settings.
func (c *Config) World() physics.Config {
	return physics.Config{
		Gravity:       c.Physics.Gravity,
		WallDistanceX: c.Physics.WallDistance,
		WallDistanceZ: c.Physics.WallDistance,
		RestingSpeed:  physics.DefaultConfig().RestingSpeed,
		Floor:         c.Physics.Floor,
		Wall:          c.Physics.Wall,
		Dice:          c.Physics.Dice,
	}
}

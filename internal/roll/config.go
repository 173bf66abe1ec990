package roll

import "github.com/Faultbox/tavern-dice/internal/physics"

// Config holds the roll tuning: dice limits, settlement, launch ranges and
// the per-body physics parameters.
type Config struct {
	MaxDice         int
	SettleThreshold float32 // speed below which a die counts as quiet
	SettleFrames    int     // consecutive quiet ticks before a die is settled
	SettlingEnergy  float32 // peak |v|²+|ω|² below which the settling hint fires

	FixedStep    float32
	MaxSubSteps  int
	MaxFrameTime float32

	Spread        float32 // launch disk radius
	InitialHeight float32
	HeightJitter  float32
	ImpulseOffset float32 // size of the random impulse application box

	MinForce, MaxForce, ForceJitter    float32
	MinTorque, MaxTorque, TorqueJitter float32

	LinearDamping   float32
	AngularDamping  float32
	SleepSpeedLimit float32
	SleepTimeLimit  float32
}

// DefaultConfig returns the tuning the tray was balanced with.
func DefaultConfig() Config {
	return Config{
		MaxDice:         50,
		SettleThreshold: 0.15,
		SettleFrames:    30,
		SettlingEnergy:  5,

		FixedStep:    1.0 / 60.0,
		MaxSubSteps:  2,
		MaxFrameTime: 1.0 / 30.0,

		Spread:        8,
		InitialHeight: 10,
		HeightJitter:  4,
		ImpulseOffset: 0.2,

		MinForce:     8,
		MaxForce:     20,
		ForceJitter:  4,
		MinTorque:    12,
		MaxTorque:    35,
		TorqueJitter: 6,

		LinearDamping:   0.4,
		AngularDamping:  0.8,
		SleepSpeedLimit: 0.15,
		SleepTimeLimit:  0.4,
	}
}

func (c Config) body(mass float32) physics.BodyConfig {
	return physics.BodyConfig{
		Mass:            mass,
		LinearDamping:   c.LinearDamping,
		AngularDamping:  c.AngularDamping,
		SleepSpeedLimit: c.SleepSpeedLimit,
		SleepTimeLimit:  c.SleepTimeLimit,
	}
}

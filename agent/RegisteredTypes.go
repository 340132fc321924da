package agent

import "sort"

// Type represents a specific learning algorithm, for example DQN or
// PPO. Each registered Type is associated with the Kind of agent that
// the algorithm produces.
type Type string

const (
	// Off-policy methods
	DQN  Type = "DQN"
	DDPG Type = "DDPG"
	TD3  Type = "TD3"
	SAC  Type = "SAC"
	ApeX Type = "ApeX"
	GAIL Type = "GAIL"

	// On-policy methods
	VPG Type = "VPG"
	PPO Type = "PPO"
	A2C Type = "A2C"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config of that Type can be created without
// specifying its Kind.
var registeredTypes map[Type]Kind

func init() {
	registeredTypes = make(map[Type]Kind)

	for _, t := range []Type{DQN, DDPG, TD3, SAC, ApeX, GAIL} {
		Register(t, OffPolicy)
	}
	for _, t := range []Type{VPG, PPO, A2C} {
		Register(t, OnPolicy)
	}
}

// Register registers an algorithm Type with the Kind of agent it
// produces. Registering a Type twice overwrites the previous Kind.
func Register(agentType Type, kind Kind) {
	registeredTypes[agentType] = kind
}

// KindOf returns the Kind registered for an algorithm Type and whether
// the Type was registered at all.
func KindOf(agentType Type) (Kind, bool) {
	kind, ok := registeredTypes[agentType]
	return kind, ok
}

// Registered returns all registered Types in sorted order
func Registered() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin    RoleType = "admin"
	RoleTeacher  RoleType = "professor"
	RoleGuardian RoleType = "responsavel"
)

// PlanTier defines the subscription tier gating guardian app access.
// Students carry a denormalized copy; the users table is authoritative
// for login gating.
type PlanTier string

const (
	PlanBasic    PlanTier = "basico"
	PlanStandard PlanTier = "standard"
	PlanPremium  PlanTier = "premium"
)

// LifecycleStatus is the active/inactive flag shared by students and teachers.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "ativo"
	StatusInactive LifecycleStatus = "inativo"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryIncome  EntryType = "receita"
	EntryExpense EntryType = "despesa"
)

// DefaultRelationship is the label used when a guardian link is provisioned
// without an explicit relationship.
const DefaultRelationship = "Responsável"

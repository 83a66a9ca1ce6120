package model

type RiskImpact string

const (
	ImpactLow    RiskImpact = "Low"
	ImpactMedium RiskImpact = "Medium"
	ImpactHigh   RiskImpact = "High"
)

func (i RiskImpact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

type RiskStatus string

const (
	RiskOpen       RiskStatus = "Open"
	RiskInProgress RiskStatus = "In Progress"
	RiskResolved   RiskStatus = "Resolved"
)

func (s RiskStatus) Valid() bool {
	switch s {
	case RiskOpen, RiskInProgress, RiskResolved:
		return true
	}
	return false
}

// Risk 项目风险条目，只能随所属项目一起读写
type Risk struct {
	ID                 string     `json:"id"`
	Description        string     `json:"description"`
	Owner              string     `json:"owner"`
	Impact             RiskImpact `json:"impact"`
	ResolutionTimeline string     `json:"resolution_timeline"`
	Status             RiskStatus `json:"status"`
}

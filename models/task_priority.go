package models

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
)

var taskPriorityHumanName = map[TaskPriority]string{
	TaskPriorityLow:    "Low",
	TaskPriorityNormal: "Normal",
	TaskPriorityHigh:   "High",
}

func (p TaskPriority) ToHuman() string {
	if human, exist := taskPriorityHumanName[p]; exist {
		return human
	}
	return string(p)
}

func (p TaskPriority) IsValid() bool {
	_, ok := taskPriorityHumanName[p]
	return ok
}

// PriorityRankOrder sorts tasks high first, then normal, then low.
const PriorityRankOrder = "CASE tasks.priority WHEN 'high' THEN 3 WHEN 'normal' THEN 2 ELSE 1 END DESC"

package dto

type DefineInput struct {
	Collection  string
	Name        string
	BaseMinutes int
	BaseXP      float64
	Multiplier  float64
}

type DefinitionOutput struct {
	Name        string
	BaseMinutes int
	BaseXP      float64
	Multiplier  float64
}

type AppraiseInput struct {
	Collection string
	Name       string
	Minutes    int
}

type AppraiseOutput struct {
	Name    string
	Minutes int
	XP      float64
	Partial bool
}

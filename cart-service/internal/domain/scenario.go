package domain

// Op names one cart mutation in a scenario.
type Op string

const (
	OpAdd      Op = "add"
	OpRemove   Op = "remove"
	OpUpdate   Op = "update"
	OpClear    Op = "clear"
	OpDiscount Op = "discount"
	OpRegion   Op = "region"
)

// Step is a single operation. Only the fields used by Op are set.
type Step struct {
	Op        Op
	Product   Product // add
	ProductID string  // remove, update
	Quantity  int     // add, update
	Discount  Discount
	Region    string
}

// Scenario is an ordered list of steps applied to a fresh cart.
type Scenario struct {
	Name     string
	Currency string
	Region   string
	Products []Product // catalog declared by the scenario
	Steps    []Step
}

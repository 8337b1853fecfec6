package scenario

// YAMLScenario is the on-disk shape of a scenario file.
type YAMLScenario struct {
	Name     string        `yaml:"name"`
	Currency string        `yaml:"currency" validate:"omitempty,len=3,alpha"`
	Region   string        `yaml:"region"`
	Products []YAMLProduct `yaml:"products" validate:"dive"`
	Steps    []YAMLStep    `yaml:"steps" validate:"required,min=1,dive"`
}

// YAMLProduct is a catalog entry that add steps can refer to by id.
type YAMLProduct struct {
	ID    string `yaml:"id" validate:"required"`
	Name  string `yaml:"name"`
	Price string `yaml:"price" validate:"required,numeric"`
}

// YAMLStep is one operation. Which fields are required depends on Op.
type YAMLStep struct {
	Op string `yaml:"op" validate:"required,oneof=add remove update clear discount region"`

	// add, remove, update. An add step without price uses the catalog entry.
	ID       string `yaml:"id" validate:"required_if=Op add,required_if=Op remove,required_if=Op update"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price" validate:"omitempty,numeric"`
	Quantity *int   `yaml:"quantity" validate:"required_if=Op update"`

	// discount
	Code  string `yaml:"code"`
	Type  string `yaml:"type" validate:"required_if=Op discount,omitempty,oneof=percentage fixed"`
	Value string `yaml:"value" validate:"required_if=Op discount,omitempty,numeric"`

	// region
	Region string `yaml:"region" validate:"required_if=Op region"`
}

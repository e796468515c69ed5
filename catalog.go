package locallink

// Catalog lists the local services and FAQs the assistant knows about.
type Catalog struct {
	Services []ServiceCategory
	FAQs     []FAQ
}

// ServiceCategory groups the packages offered for one kind of service.
type ServiceCategory struct {
	Name     string
	Packages []ServicePackage
}

// ServicePackage is a named offer with its price and inclusions.
type ServicePackage struct {
	Name        string
	Description string
}

// FAQ is a canned answer to a common question.
type FAQ struct {
	Topic  string
	Answer string
}

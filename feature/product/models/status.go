package models

// Status ids of the catalog.
const (
	StatusActive   uint8 = 1
	StatusInActive uint8 = 2
)

// ProductStatus represents the 'product_statuses' table.
type ProductStatus struct {
	ID   uint8  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Code string `gorm:"column:code;size:32;uniqueIndex" json:"code"`
	Name string `gorm:"column:name;size:64" json:"name"`
}

// TableName overrides the table name.
func (ProductStatus) TableName() string {
	return "product_statuses"
}

// Statuses is the fixed status catalog.
var Statuses = []ProductStatus{
	{ID: StatusActive, Code: "Active", Name: "Active"},
	{ID: StatusInActive, Code: "InActive", Name: "Inactive"},
}

// StatusByID returns the catalog entry for id.
func StatusByID(id uint8) (ProductStatus, bool) {
	for _, s := range Statuses {
		if s.ID == id {
			return s, true
		}
	}
	return ProductStatus{}, false
}

// ResolveStatus matches a staged status against the catalog names, then codes.
// Matching is exact and case-sensitive.
func ResolveStatus(value string) (ProductStatus, bool) {
	for _, s := range Statuses {
		if s.Name == value {
			return s, true
		}
	}
	for _, s := range Statuses {
		if s.Code == value {
			return s, true
		}
	}
	return ProductStatus{}, false
}

// TargetStatus returns the canonical status for an activation request.
func TargetStatus(activate bool) ProductStatus {
	if activate {
		s, _ := StatusByID(StatusActive)
		return s
	}
	s, _ := StatusByID(StatusInActive)
	return s
}

// NameAndCode is the wire form of a coded value.
type NameAndCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// View returns the status as a NameAndCode.
func (s ProductStatus) View() NameAndCode {
	return NameAndCode{Code: s.Code, Name: s.Name}
}

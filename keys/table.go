package keys

// TableSpec describes the single-table layout for the storage client.
type TableSpec struct {
	// TableName is the name of the table holding all record variants.
	// Default: "relational-store"
	TableName string

	// InvertedIndex is the name of the GSI whose keys are {GSI1PK, GSI1SK} =
	// {SK, PK}. Default: "GSI1"
	InvertedIndex string

	// AccountIndex is the name of the sparse GSI whose keys are
	// {GSI2PK, GSI2SK} = {accountUrn, urn}. Default: "GSI2"
	AccountIndex string
}

// DefaultTableSpec returns the layout used when nothing is overridden.
func DefaultTableSpec() TableSpec {
	return TableSpec{
		TableName:     "relational-store",
		InvertedIndex: IndexInverted,
		AccountIndex:  IndexAccount,
	}
}

// Validate fills in defaults for any empty field.
func (t *TableSpec) Validate() {
	if t.TableName == "" {
		t.TableName = "relational-store"
	}
	if t.InvertedIndex == "" {
		t.InvertedIndex = IndexInverted
	}
	if t.AccountIndex == "" {
		t.AccountIndex = IndexAccount
	}
}

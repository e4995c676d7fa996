package types

const (
	// ModuleName defines the module name
	ModuleName = "gridstaking"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// CurationPoolName is the module account of the curation collaborator.
	// Curation fee cuts are transferred there before Collect is invoked on the
	// curation keeper.
	CurationPoolName = "curation"
)

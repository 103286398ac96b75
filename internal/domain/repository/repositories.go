package repository

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Items         ItemRepository
	Instances     ItemInstanceRepository
	Inbound       InventoryInRepository
	Outbound      InventoryOutRepository
	Requests      SupplyRequestRepository
	Returns       SupplyReturnRepository
	Chase         ChaseItemRepository
	Registers     RegisterItemRepository
	Categories    CategoryRepository
	Organizations OrganizationRepository
	Users         UserRepository
}

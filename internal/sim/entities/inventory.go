package entities

// ItemType enumerates everything that can sit in an inventory or a market's
// ware table. Grounded on original_source inventory.rs's InventoryItemType.
type ItemType uint8

const (
	ItemUnknown ItemType = iota
	ItemCommonMineral
	ItemUncommonMineral
	ItemRareMineral
	ItemQuestCargo
	ItemFood
	ItemMedicament
	ItemHandWeapon
)

// MineralTypes lists the item types minerals can spawn as.
var MineralTypes = []ItemType{ItemCommonMineral, ItemUncommonMineral, ItemRareMineral}

// Stackable reports whether items of this type stack into a single slot by
// quantity, or each occupy a distinct slot (QuestCargo never stacks).
func (t ItemType) Stackable() bool {
	return t != ItemUnknown && t != ItemQuestCargo
}

// InventoryItem is one stack (or one unique item, for non-stackables) in a
// ship's or planet's inventory.
type InventoryItem struct {
	Id        Id
	Quantity  int32
	Value     int32
	ItemType  ItemType
	QuestId   *Id
}

// NewInventoryItem builds a fresh stack of the given type and quantity.
func NewInventoryItem(id Id, itemType ItemType, quantity int32) InventoryItem {
	return InventoryItem{Id: id, Quantity: quantity, ItemType: itemType}
}

// Inventory is an ordered list of item stacks, as carried by a Ship or
// stored per-planet in a Market.
type Inventory []InventoryItem

// QuantityOf sums the quantity of all stacks of the given type.
func (inv Inventory) QuantityOf(t ItemType) int32 {
	var total int32
	for _, it := range inv {
		if it.ItemType == t {
			total += it.Quantity
		}
	}
	return total
}

// Add merges a stack into the inventory: if the type is stackable and a
// stack of that type already exists, quantities combine; otherwise the
// stack is appended as-is.
func (inv Inventory) Add(item InventoryItem) Inventory {
	if item.ItemType.Stackable() {
		for i := range inv {
			if inv[i].ItemType == item.ItemType {
				inv[i].Quantity += item.Quantity
				return inv
			}
		}
	}
	return append(inv, item)
}

// Consume removes up to quantity units of itemType, returning the inventory
// with the stack reduced/removed and the quantity actually removed. It never
// removes more than is present, matching the "partial trades are atomic per
// leg" contract at the call site in market: a caller must check the
// returned amount against what it required.
func (inv Inventory) Consume(itemType ItemType, quantity int32) (Inventory, int32) {
	removed := int32(0)
	out := inv[:0:0]
	for _, it := range inv {
		if it.ItemType != itemType || removed >= quantity {
			out = append(out, it)
			continue
		}
		take := quantity - removed
		if take >= it.Quantity {
			removed += it.Quantity
			continue // drop the whole stack
		}
		it.Quantity -= take
		removed += take
		out = append(out, it)
	}
	return out, removed
}

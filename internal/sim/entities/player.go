package entities

// QuestStage tracks a cargo-rush quest's progress through pickup/dropoff.
type QuestStage uint8

const (
	QuestStarted QuestStage = iota
	QuestPicked
	QuestDelivered
)

// Quest is a mode-generated objective tracked on the player.
type Quest struct {
	Active          bool
	Stage           QuestStage
	PickupPlanetId  Id
	DropoffPlanetId Id
	MineralType     ItemType
	Reward          int32
}

// Notification is a one-shot message queued for client delivery (dialogue
// substitutions, quest completion, trade results).
type Notification struct {
	Text      string
	CreatedAt int64 // ticks
}

// Player is the account-level actor: it may or may not currently control a
// Ship.
type Player struct {
	Id           Id
	Name         string
	PortraitName string
	ShipId       *Id
	Money        int32
	Quest        *Quest
	LongActions  []LongAction
	Notifications []Notification

	DialogueStateId *Id // current node of the active dialogue, if any
	DialogueName    string

	ToClean bool
}

// HasTransSystemJump reports whether the player already has an in-flight
// TransSystemJump.
func (p Player) HasTransSystemJump() bool {
	for _, a := range p.LongActions {
		if a.Kind == LongActionTransSystemJump {
			return true
		}
	}
	return false
}

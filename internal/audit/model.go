package audit

import "time"

// Action tags recorded against audit entries.
const (
	ActionAccountCreated  = "account_created"
	ActionAccountUpdated  = "account_updated"
	ActionAccountDeleted  = "account_deleted"
	ActionMenuUpdated     = "menu_updated"
	ActionFeedSynced      = "feed_synced"
	ActionMessCreated     = "mess_created"
	ActionSystemReset     = "system_reset"
	ActionProfileRepaired = "profile_repaired"
)

// Entry is one append-only audit record. Entries are never mutated or
// deleted.
type Entry struct {
	ID         string    `bson:"_id" json:"id"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	Action     string    `bson:"action" json:"action"`
	Detail     string    `bson:"detail" json:"detail"`
	MessID     *string   `bson:"messId,omitempty" json:"messId,omitempty"`
	ActorEmail string    `bson:"actorEmail" json:"actorEmail"`
	ActorName  string    `bson:"actorName" json:"actorName"`
}

package livedemo

import "github.com/mnohosten/changetrack/pkg/changeset"

// Item is the demo domain value held in the server's inventory cache.
type Item struct {
	Key   string `json:"key"`
	Price int    `json:"price"`
}

func itemKey(it Item) string    { return it.Key }
func itemEquals(a, b Item) bool { return a == b }

// jsonChange is the wire rendering of one atomic keyed change, grounded on
// the ChangeEvent JSON-tagged struct pattern for turning an internal event
// into a stable wire shape. pkg/changeset itself stays free of struct tags
// and encoding/json imports; this adapter exists only for the WebSocket
// feed below.
type jsonChange struct {
	Reason   changeset.KeyedChangeReason `json:"reason"`
	Key      string                      `json:"key"`
	Current  *Item                       `json:"current,omitempty"`
	Previous *Item                       `json:"previous,omitempty"`
}

// jsonChangeSet is the wire rendering of a whole published change set.
type jsonChangeSet struct {
	Type    changeset.Type `json:"type"`
	Changes []jsonChange   `json:"changes"`
}

func renderChangeSet(cs changeset.KeyedChangeSet[string, Item]) jsonChangeSet {
	out := jsonChangeSet{Type: cs.Type(), Changes: make([]jsonChange, 0, cs.Count())}
	for _, c := range cs.Changes() {
		key, _ := c.Key()
		jc := jsonChange{Reason: c.Reason(), Key: key}
		if cur, err := c.Current(); err == nil {
			jc.Current = &cur
		}
		if prev, err := c.Previous(); err == nil {
			jc.Previous = &prev
		}
		out.Changes = append(out.Changes, jc)
	}
	return out
}

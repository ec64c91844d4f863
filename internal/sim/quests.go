package sim

import (
	"fmt"

	"voxelstead/internal/block"
	"voxelstead/internal/config"
)

// Quest is one step of the homestead quest line: bring the NPC a number
// of a harvested item for a coin reward.
type Quest struct {
	Title  string
	Item   block.Material
	Count  int
	Reward int
}

// QuestLine tracks the inventory of harvested items and the ordered fetch
// quests from config. One quest is active at a time; it advances only when
// the player turns the items in at the NPC.
type QuestLine struct {
	quests  []Quest
	current int
	inv     map[block.Material]int
	coins   int
	feed    *Feed
}

// NewQuestLine resolves the configured quest line and subscribes to the
// feed so destroyed blocks land in the inventory.
func NewQuestLine(feed *Feed, specs []config.Quest) (*QuestLine, error) {
	l := &QuestLine{inv: make(map[block.Material]int), feed: feed}
	for _, s := range specs {
		item, err := block.ParseMaterial(s.Item)
		if err != nil {
			return nil, fmt.Errorf("quest %q: %w", s.Title, err)
		}
		l.quests = append(l.quests, Quest{Title: s.Title, Item: item, Count: s.Count, Reward: s.Reward})
	}
	feed.Subscribe(l.onEvent)
	return l, nil
}

func (l *QuestLine) onEvent(ev Event) {
	if ev.Kind != EventBlockDestroyed {
		return
	}
	mat, err := block.ParseMaterial(ev.Material)
	if err != nil {
		return
	}
	if item, ok := mat.Harvest(); ok {
		l.inv[item]++
	}
}

// Active returns the current quest, or nil once the line is finished.
func (l *QuestLine) Active() *Quest {
	if l.current >= len(l.quests) {
		return nil
	}
	return &l.quests[l.current]
}

// Have reports how many of the active quest's wanted item are in the bag.
func (l *QuestLine) Have() int {
	q := l.Active()
	if q == nil {
		return 0
	}
	return l.inv[q.Item]
}

// Count reports the inventory for one item kind.
func (l *QuestLine) Count(item block.Material) int {
	return l.inv[item]
}

// CanTurnIn reports whether the active quest is satisfied.
func (l *QuestLine) CanTurnIn() bool {
	q := l.Active()
	return q != nil && l.inv[q.Item] >= q.Count
}

// TurnIn consumes the wanted items, pays the reward, and moves the line to
// the next quest. It reports false when the active quest is not satisfied
// or the line is finished.
func (l *QuestLine) TurnIn(tick uint64) bool {
	q := l.Active()
	if q == nil || l.inv[q.Item] < q.Count {
		return false
	}
	l.inv[q.Item] -= q.Count
	l.coins += q.Reward
	l.current++
	l.feed.Publish(Event{Kind: EventQuestAdvanced, Tick: tick, Quest: q.Title, Coins: l.coins})
	return true
}

// Finished reports whether every quest has been turned in.
func (l *QuestLine) Finished() bool {
	return l.current >= len(l.quests)
}

// Progress reports the line position for the HUD, 1-based.
func (l *QuestLine) Progress() (int, int) {
	n := l.current + 1
	if n > len(l.quests) {
		n = len(l.quests)
	}
	return n, len(l.quests)
}

func (l *QuestLine) Coins() int {
	return l.coins
}

package sim

import (
	"testing"

	"voxelstead/internal/block"
	"voxelstead/internal/config"
)

func testQuestLine(t *testing.T, feed *Feed) *QuestLine {
	t.Helper()
	line, err := NewQuestLine(feed, []config.Quest{
		{Title: "Clear the meadow", Item: "stone", Count: 2, Reward: 10},
		{Title: "A basket of produce", Item: "crop_grown", Count: 1, Reward: 25},
	})
	if err != nil {
		t.Fatalf("building quest line: %v", err)
	}
	return line
}

func destroyEvent(mat block.Material) Event {
	return Event{Kind: EventBlockDestroyed, Material: mat.String()}
}

func TestQuestLineRejectsUnknownItem(t *testing.T) {
	feed := &Feed{}
	_, err := NewQuestLine(feed, []config.Quest{{Title: "Broken", Item: "bedrock", Count: 1, Reward: 1}})
	if err == nil {
		t.Error("Expected error for unknown item material")
	}
}

func TestInventoryFillsFromDestroyedBlocks(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Grass))

	if line.Count(block.Stone) != 2 {
		t.Errorf("Expected 2 stone, got %d", line.Count(block.Stone))
	}
	// Grass strips down to soil
	if line.Count(block.Soil) != 1 {
		t.Errorf("Expected 1 soil from grass, got %d", line.Count(block.Soil))
	}
	if line.Count(block.Grass) != 0 {
		t.Errorf("Grass itself is not an item, got %d", line.Count(block.Grass))
	}
}

func TestInventoryIgnoresYieldlessBlocks(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(destroyEvent(block.CropSprout))
	feed.Publish(destroyEvent(block.Water))

	if line.Count(block.CropSprout) != 0 || line.Count(block.Water) != 0 {
		t.Error("Sprouts and water yield nothing")
	}
}

func TestInventoryIgnoresPlacedAndToppled(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(Event{Kind: EventBlockPlaced, Material: block.Stone.String()})
	feed.Publish(Event{Kind: EventBlockToppled, Material: block.Stone.String()})

	if line.Count(block.Stone) != 0 {
		t.Errorf("Only destroyed blocks are harvested, got %d stone", line.Count(block.Stone))
	}
}

func TestTurnInRequiresFullCount(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(destroyEvent(block.Stone))
	if line.CanTurnIn() {
		t.Error("One stone of two should not satisfy the quest")
	}
	if line.TurnIn(10) {
		t.Error("TurnIn must refuse an unsatisfied quest")
	}
	if line.Coins() != 0 {
		t.Errorf("Expected no coins yet, got %d", line.Coins())
	}
	if line.Active().Title != "Clear the meadow" {
		t.Errorf("Quest line advanced early to %q", line.Active().Title)
	}
}

func TestTurnInConsumesItemsAndPays(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	var advanced []Event
	feed.Subscribe(func(ev Event) {
		if ev.Kind == EventQuestAdvanced {
			advanced = append(advanced, ev)
		}
	})

	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Stone))

	if !line.CanTurnIn() {
		t.Fatal("Three stone should satisfy a two-stone quest")
	}
	if !line.TurnIn(42) {
		t.Fatal("TurnIn failed on a satisfied quest")
	}

	if line.Coins() != 10 {
		t.Errorf("Expected 10 coins, got %d", line.Coins())
	}
	// Two consumed, one left over
	if line.Count(block.Stone) != 1 {
		t.Errorf("Expected 1 stone left after turn-in, got %d", line.Count(block.Stone))
	}
	if line.Active().Title != "A basket of produce" {
		t.Errorf("Expected the next quest active, got %q", line.Active().Title)
	}

	if len(advanced) != 1 {
		t.Fatalf("Expected one quest_advanced event, got %d", len(advanced))
	}
	if advanced[0].Quest != "Clear the meadow" || advanced[0].Coins != 10 || advanced[0].Tick != 42 {
		t.Errorf("Unexpected event payload: %+v", advanced[0])
	}
}

func TestQuestLineFinishes(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Stone))
	line.TurnIn(1)
	feed.Publish(destroyEvent(block.CropGrown))
	line.TurnIn(2)

	if !line.Finished() {
		t.Error("Expected the line finished after both turn-ins")
	}
	if line.Active() != nil {
		t.Error("Finished line has no active quest")
	}
	if line.TurnIn(3) {
		t.Error("TurnIn on a finished line must refuse")
	}
	if line.Coins() != 35 {
		t.Errorf("Expected 35 coins total, got %d", line.Coins())
	}
}

func TestQuestLineProgress(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	n, total := line.Progress()
	if n != 1 || total != 2 {
		t.Errorf("Expected 1/2, got %d/%d", n, total)
	}

	feed.Publish(destroyEvent(block.Stone))
	feed.Publish(destroyEvent(block.Stone))
	line.TurnIn(1)

	n, total = line.Progress()
	if n != 2 || total != 2 {
		t.Errorf("Expected 2/2, got %d/%d", n, total)
	}
}

func TestHaveTracksActiveQuestItem(t *testing.T) {
	feed := &Feed{}
	line := testQuestLine(t, feed)

	feed.Publish(destroyEvent(block.CropGrown))
	if line.Have() != 0 {
		t.Errorf("Have should track the active quest's item, got %d", line.Have())
	}
	feed.Publish(destroyEvent(block.Stone))
	if line.Have() != 1 {
		t.Errorf("Expected 1 stone toward the active quest, got %d", line.Have())
	}
}

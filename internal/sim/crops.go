package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
)

// SwapFunc replaces a live block with one of another material at the same
// cell, returning the new block.
type SwapFunc func(old *block.Block, mat block.Material) (*block.Block, error)

// PlantFunc places a fresh crop block at a cell center.
type PlantFunc func(pos rl.Vector3, mat block.Material) (*block.Block, error)

type cropSite struct {
	blk   *block.Block // nil while the site regrows after a harvest
	pos   rl.Vector3
	since uint64
}

// CropField advances planted crops through their lifecycle: a sprout
// becomes a grown crop after growTicks; once the player harvests the grown
// block, the site replants itself after regrowTicks.
type CropField struct {
	growTicks   uint64
	regrowTicks uint64
	feed        *Feed
	plant       PlantFunc
	swap        SwapFunc
	sites       []*cropSite
}

func NewCropField(growTicks, regrowTicks uint64, feed *Feed, plant PlantFunc, swap SwapFunc) *CropField {
	return &CropField{
		growTicks:   growTicks,
		regrowTicks: regrowTicks,
		feed:        feed,
		plant:       plant,
		swap:        swap,
	}
}

// AddSite registers a freshly planted sprout.
func (c *CropField) AddSite(blk *block.Block, tick uint64) {
	c.sites = append(c.sites, &cropSite{blk: blk, pos: blk.Position(), since: tick})
}

// NotifyDestroyed marks a harvested site dormant. Blocks that are not crop
// sites are ignored.
func (c *CropField) NotifyDestroyed(blk *block.Block, tick uint64) {
	for _, s := range c.sites {
		if s.blk == blk {
			s.blk = nil
			s.since = tick
			return
		}
	}
}

// Advance matures sprouts and replants harvested sites.
func (c *CropField) Advance(tick uint64) {
	for _, s := range c.sites {
		switch {
		case s.blk != nil && s.blk.Material() == block.CropSprout && tick-s.since >= c.growTicks:
			grown, err := c.swap(s.blk, block.CropGrown)
			if err != nil {
				continue
			}
			s.blk = grown
			s.since = tick
			if c.feed != nil {
				c.feed.Publish(Event{Kind: EventCropMatured, Tick: tick, Pos: s.pos, Material: block.CropGrown.String()})
			}
		case s.blk == nil && tick-s.since >= c.regrowTicks:
			sprout, err := c.plant(s.pos, block.CropSprout)
			if err != nil {
				continue
			}
			s.blk = sprout
			s.since = tick
		}
	}
}

// GrownCount reports sites currently bearing a harvestable crop.
func (c *CropField) GrownCount() int {
	n := 0
	for _, s := range c.sites {
		if s.blk != nil && s.blk.Material() == block.CropGrown {
			n++
		}
	}
	return n
}

// SproutCount reports sites still growing.
func (c *CropField) SproutCount() int {
	n := 0
	for _, s := range c.sites {
		if s.blk != nil && s.blk.Material() == block.CropSprout {
			n++
		}
	}
	return n
}

func (c *CropField) SiteCount() int {
	return len(c.sites)
}

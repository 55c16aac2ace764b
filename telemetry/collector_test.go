package telemetry

import "testing"

func TestCollectorFlush(t *testing.T) {
	c := NewCollector("run-1", 100)

	if c.ShouldFlush(99) {
		t.Error("flushed before the window ended")
	}
	if !c.ShouldFlush(100) {
		t.Error("did not flush at window end")
	}

	c.RecordBirth(BirthSpawned)
	c.RecordBirth(BirthMutated)
	c.RecordBirth(BirthMutated)
	c.RecordDeath(DeathEaten)
	c.RecordDeath(DeathStarved)
	c.RecordDeath(DeathStarved)
	c.RecordAbsorption(40)
	c.RecordDecay(1.5)

	sample := &PopulationSample{
		Sizes:       []float64{20, 40, 60},
		Generations: []float64{0, 1, 5},
		Hidden:      []float64{0, 0, 2},
		Connections: []float64{5, 6, 9},
		Lineages:    2,
	}
	stats := c.Flush(100, sample)

	if stats.RunID != "run-1" {
		t.Errorf("run id = %q", stats.RunID)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d], want [0, 100]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Population != 3 || stats.Lineages != 2 {
		t.Errorf("population/lineages = %d/%d, want 3/2", stats.Population, stats.Lineages)
	}
	if stats.BirthsSpawned != 1 || stats.BirthsCloned != 0 || stats.BirthsMutated != 2 {
		t.Errorf("births = %d/%d/%d", stats.BirthsSpawned, stats.BirthsCloned, stats.BirthsMutated)
	}
	if stats.DeathsEaten != 1 || stats.DeathsStarved != 2 {
		t.Errorf("deaths = %d/%d", stats.DeathsEaten, stats.DeathsStarved)
	}
	if stats.MassAbsorbed != 40 || stats.MassDecayed != 1.5 {
		t.Errorf("mass = %v/%v", stats.MassAbsorbed, stats.MassDecayed)
	}
	if stats.Size.Max != 60 || stats.Generation.Max != 5 {
		t.Errorf("distributions = %+v %+v", stats.Size, stats.Generation)
	}

	next := c.Flush(200, &PopulationSample{})
	if next.WindowStartTick != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartTick)
	}
	if next.Births() != 0 || next.Deaths() != 0 || next.MassAbsorbed != 0 {
		t.Error("counters not reset after flush")
	}
}

func TestPopulationSampleReset(t *testing.T) {
	s := &PopulationSample{Sizes: []float64{1, 2}, Lineages: 3}
	s.Reset()
	if len(s.Sizes) != 0 || s.Lineages != 0 {
		t.Errorf("Reset left %+v", s)
	}
	if cap(s.Sizes) < 2 {
		t.Error("Reset dropped the backing array")
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 10, 1, BirthSpawned, 30)
	lt.Register(2, 20, 1, BirthMutated, 20)
	lt.Register(3, 20, 3, BirthSpawned, 30)

	lt.RecordChild(1)
	lt.RecordAbsorption(1)
	lt.UpdateSize(1, 80)
	lt.UpdateSize(1, 50)

	s := lt.Get(1)
	if s.Children != 1 || s.Absorptions != 1 || s.PeakSize != 80 {
		t.Errorf("stats = %+v", s)
	}
	if s.Age(25) != 15 {
		t.Errorf("Age = %d, want 15", s.Age(25))
	}
	if n := lt.ActiveLineageCount(); n != 2 {
		t.Errorf("lineages = %d, want 2", n)
	}

	lt.Remove(3)
	if n := lt.ActiveLineageCount(); n != 1 {
		t.Errorf("lineages after removal = %d, want 1", n)
	}
	if lt.Count() != 2 {
		t.Errorf("count = %d, want 2", lt.Count())
	}
}

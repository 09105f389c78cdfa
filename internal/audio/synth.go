package audio

import "math"

// Groove is a procedural drum-and-bass loop used as a stand-in input when no
// microphone is wanted. Every sample is a pure function of the seed and the
// running clock, so two grooves with the same seed render the same audio.
type Groove struct {
	sampleRate float64
	tempo      float64 // beats per minute
	t          float64
	seed       uint64
	noise      uint64
	lp         float64
}

// Bass roots (Hz) per bar, cycled.
var grooveRoots = [...]float64{55.0, 65.4, 49.0, 61.7}

func NewGroove(sampleRate float64, seed uint64) *Groove {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if seed == 0 {
		seed = 1
	}
	return &Groove{
		sampleRate: sampleRate,
		tempo:      118 + float64(seed%9),
		seed:       seed,
		noise:      seed,
	}
}

func (g *Groove) SampleRate() float64 { return g.sampleRate }

// Next renders one mono sample in [-1,1].
func (g *Groove) Next() float64 {
	beatLen := 60.0 / g.tempo
	beatPos := g.t / beatLen
	beat := int(beatPos)
	trig := (beatPos - float64(beat)) * beatLen
	eighth := math.Mod(g.t, beatLen/2)
	bar := beat / 4

	s := 0.0
	// Four on the floor, snare on 2 and 4, hats on every eighth.
	s += kick(trig) * 0.9
	if beat%2 == 1 {
		s += snare(trig, &g.noise) * 0.45
	}
	s += hihat(eighth, beat%4 == 3 && trig >= beatLen/2, &g.noise)

	root := grooveRoots[bar%len(grooveRoots)]
	env := math.Exp(-trig * 3.0)
	s += fmBass(g.t, root, env) * 0.5

	// Slow wash of filtered noise keeps the high band from going silent.
	g.lp += 0.02 * (lcg(&g.noise) - g.lp)
	s += g.lp * 0.05

	g.t += 1.0 / g.sampleRate
	return softSat(s)
}

// Fill renders len(dst) samples.
func (g *Groove) Fill(dst []float32) {
	for i := range dst {
		dst[i] = float32(g.Next())
	}
}

// softSat applies gentle tanh-like saturation without hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// kick returns a kick drum sample given time-since-trigger (trig) in seconds.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}

// snare returns a snare sample given time-since-trigger.
func snare(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := (math.Sin(2*math.Pi*188*trig)*0.24 + math.Sin(2*math.Pi*356*trig)*0.10) * env
	n1 := lcg(seed)
	n2 := lcg(seed)
	bandNoise := (n1 - n2*0.55) * env * (0.55 + 0.25*math.Exp(-trig*8.0))
	return softSat(body + bandNoise)
}

// hihat returns a closed hi-hat sample. open=true for longer decay.
func hihat(trig float64, open bool, seed *uint64) float64 {
	decay := 42.0
	limit := 0.06
	if open {
		decay = 15.0
		limit = 0.18
	}
	if trig > limit {
		return 0
	}
	n := lcg(seed)
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	return softSat((n*0.8 + metal*0.2) * math.Exp(-trig*decay) * 0.07)
}

// fmBass returns a warm FM bass sample.
func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	return softSat(b)
}

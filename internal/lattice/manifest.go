package lattice

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

const (
	// MaxAnchors bounds the anchors placed by one Elysium injection.
	MaxAnchors = 50
	// SpiralSpread is the radial spacing factor of the phyllotaxis spiral.
	SpiralSpread = 1.5
)

// GoldenAngle is 137.508° in radians.
var GoldenAngle = 137.508 * math.Pi / 180

// Anchor status values reported in a Manifest.
const (
	StatusIsolated = "isolated"
	StatusBonded   = "bonded"
)

// SpiralPoint is one candidate anchor cell of a phyllotaxis spiral.
type SpiralPoint struct {
	X, Y  int
	Angle float64
}

// SpiralPoints returns MaxAnchors cells on a golden-angle spiral around
// (cx, cy). The i-th point sits SpiralSpread·√(i+1) from the centre. Points
// are not bounds-checked.
func SpiralPoints(cx, cy int) []SpiralPoint {
	pts := make([]SpiralPoint, MaxAnchors)
	for i := range pts {
		angle := float64(i) * GoldenAngle
		dist := SpiralSpread * math.Sqrt(float64(i+1))
		pts[i] = SpiralPoint{
			X:     cx + int(math.Round(dist*math.Cos(angle))),
			Y:     cy + int(math.Round(dist*math.Sin(angle))),
			Angle: angle,
		}
	}
	return pts
}

// Anchor describes one node converted by an Elysium injection.
type Anchor struct {
	Index     int     `json:"index"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Theta     float64 `json:"theta"`
	Identity  string  `json:"identity"`
	Signature string  `json:"signature"`
	Status    string  `json:"status"`
	Links     int     `json:"links"`
}

// Manifest reports the outcome of an Elysium injection.
type Manifest struct {
	CenterX   int      `json:"centerX"`
	CenterY   int      `json:"centerY"`
	Requested int      `json:"requested"`
	Skipped   int      `json:"skipped"`
	Anchors   []Anchor `json:"anchors"`
}

// Placed is the number of distinct cells turned into anchors.
func (m *Manifest) Placed() int { return len(m.Anchors) }

func (m *Manifest) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "elysium manifest: center=(%d,%d) placed=%d skipped=%d\n",
		m.CenterX, m.CenterY, m.Placed(), m.Skipped)
	for i, a := range m.Anchors {
		fmt.Fprintf(&sb, "  #%02d %s sig=%s cell=(%d,%d) theta=%.3f status=%s links=%d\n",
			i, a.Identity, a.Signature, a.X, a.Y, a.Theta, a.Status, a.Links)
	}
	return sb.String()
}

// placeAnchors turns in-bounds spiral cells of g into Titans and returns
// the manifest along with the tags to record once g is swapped in.
func (e *Engine) placeAnchors(g *Grid, cx, cy int) (*Manifest, map[int]Tags) {
	m := &Manifest{CenterX: cx, CenterY: cy, Requested: MaxAnchors}
	tags := make(map[int]Tags)
	slot := make(map[int]int)

	for i, p := range SpiralPoints(cx, cy) {
		if !g.InBounds(p.X, p.Y) {
			m.Skipped++
			continue
		}
		idx := g.Index(p.X, p.Y)
		theta := WrapPhase(p.Angle)
		g.Nodes[idx] = Node{Theta: theta, Omega: 0, R: 1.0, Alpha: 1.0, Titan: true}

		t := e.anchorTags(i, p.X, p.Y)
		tags[idx] = t
		a := Anchor{Index: idx, X: p.X, Y: p.Y, Theta: theta, Identity: t.Identity, Signature: t.Signature}
		if k, seen := slot[idx]; seen {
			m.Anchors[k] = a
			continue
		}
		slot[idx] = len(m.Anchors)
		m.Anchors = append(m.Anchors, a)
	}

	for k := range m.Anchors {
		a := &m.Anchors[k]
		for _, j := range e.topo.Of(a.Index) {
			if g.Nodes[j].Titan {
				a.Links++
			}
		}
		a.Status = StatusIsolated
		if a.Links > 0 {
			a.Status = StatusBonded
		}
	}
	return m, tags
}

// anchorTags derives an identity and a signature hash from a random salt.
func (e *Engine) anchorTags(i, x, y int) Tags {
	salt := e.rng.Uint32()
	identity := fmt.Sprintf("anchor-%02d-%08x", i, salt)

	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:], salt)
	binary.BigEndian.PutUint32(buf[4:], uint32(i))
	binary.BigEndian.PutUint32(buf[8:], uint32(x))
	binary.BigEndian.PutUint32(buf[12:], uint32(y))
	sum := sha256.Sum256(buf[:])
	return Tags{Identity: identity, Signature: hex.EncodeToString(sum[:8])}
}

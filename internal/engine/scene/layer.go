package scene

import (
	"fmt"

	"github.com/Faultbox/mirror-room/internal/engine/mirror"
)

// RenderLayer groups render items drawn with the same technique in the
// same pass. An item may belong to several layers.
type RenderLayer int

// Render layers.
const (
	Opaque RenderLayer = iota
	MirrorsTop
	MirrorsBottom
	MirrorsRight
	MirrorsLeft
	MirrorsFront
	MirrorsBack
	ReflectedTop
	ReflectedBottom
	ReflectedRight
	ReflectedLeft
	ReflectedFront
	ReflectedBack
	Transparent
	Shadow
	LayerCount
)

var layerNames = [LayerCount]string{
	"opaque",
	"mirrorsTop", "mirrorsBottom", "mirrorsRight", "mirrorsLeft", "mirrorsFront", "mirrorsBack",
	"reflectedTop", "reflectedBottom", "reflectedRight", "reflectedLeft", "reflectedFront", "reflectedBack",
	"transparent",
	"shadow",
}

func (l RenderLayer) String() string {
	if l >= 0 && l < LayerCount {
		return layerNames[l]
	}
	return fmt.Sprintf("RenderLayer(%d)", int(l))
}

var mirrorLayers = [mirror.SideCount]RenderLayer{
	mirror.Front:  MirrorsFront,
	mirror.Back:   MirrorsBack,
	mirror.Left:   MirrorsLeft,
	mirror.Right:  MirrorsRight,
	mirror.Top:    MirrorsTop,
	mirror.Bottom: MirrorsBottom,
}

var reflectedLayers = [mirror.SideCount]RenderLayer{
	mirror.Front:  ReflectedFront,
	mirror.Back:   ReflectedBack,
	mirror.Left:   ReflectedLeft,
	mirror.Right:  ReflectedRight,
	mirror.Top:    ReflectedTop,
	mirror.Bottom: ReflectedBottom,
}

// MirrorLayer returns the layer holding the mirror surface of s.
func MirrorLayer(s mirror.Side) RenderLayer {
	return mirrorLayers[s]
}

// ReflectedLayer returns the layer holding objects reflected into s.
func ReflectedLayer(s mirror.Side) RenderLayer {
	return reflectedLayers[s]
}

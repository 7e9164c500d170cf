package carmesh

import (
	"github.com/chazu/carmesh/pkg/collision"
	"github.com/chazu/carmesh/pkg/mesh"
	"go.uber.org/zap"
)

// ProxyKinds maps each wheel section to a cylinder proxy. The body and
// anything else that collides falls back to a box.
func ProxyKinds() map[int]collision.Kind {
	kinds := make(map[int]collision.Kind, WheelCount)
	for i := 0; i < WheelCount; i++ {
		kinds[FirstWheelIndex+i] = collision.CylinderY
	}
	return kinds
}

// CollisionProxies returns the collision stand-ins for m's colliding
// sections.
func (b *Builder) CollisionProxies(m *mesh.Model) ([]*collision.Proxy, error) {
	proxies, err := collision.Build(m, ProxyKinds())
	if err != nil {
		return nil, err
	}
	b.log.Debug("collision proxies built", zap.Int("count", len(proxies)))
	return proxies, nil
}

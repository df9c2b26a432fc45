package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/sparks/components"
)

// ErrInvalidEmitter is returned by Emitter.Validate for unusable settings.
var ErrInvalidEmitter = errors.New("invalid emitter")

// Sink receives particles produced by an emitter.
type Sink interface {
	Spawn(position, velocity components.Vec2, color components.Color, lifetime float32)
}

// Emitter defaults.
const (
	DefaultDuration             = 5.0
	DefaultEmissionRate         = 10.0
	DefaultParticlesPerEmission = 1
	DefaultMinSpeed             = 50.0
	DefaultMaxSpeed             = 100.0
	DefaultMinLifetime          = 1.0
	DefaultMaxLifetime          = 2.0
)

// FullCircle is the spread angle that places no constraint on direction.
const FullCircle = 2 * math.Pi

// EmitterID identifies an emitter within the system that owns it.
type EmitterID uint32

// Emitter periodically spawns particles into a Sink.
//
// It is Active while elapsed < duration and Expired afterwards. Expired is
// terminal under Update; only SetActive, SetDuration or Restart rewind elapsed.
type Emitter struct {
	id      EmitterID
	sink    Sink
	sampler *Sampler

	position  components.Vec2
	direction components.Vec2 // zero = isotropic
	angle     float32         // spread, radians
	color     components.Color
	jitter    uint8 // per-channel RGB variation

	duration float32
	elapsed  float32
	active   bool

	particlesPerEmission int
	emissionRate         float32
	accumulator          float32

	minSpeed, maxSpeed       float32
	minLifetime, maxLifetime float32

	emitted int
}

// NewEmitter creates an active emitter at position with default settings.
// The sink is not owned by the emitter.
func NewEmitter(sink Sink, sampler *Sampler, position components.Vec2) *Emitter {
	return &Emitter{
		sink:                 sink,
		sampler:              sampler,
		position:             position,
		angle:                FullCircle,
		color:                components.White,
		duration:             DefaultDuration,
		active:               true,
		particlesPerEmission: DefaultParticlesPerEmission,
		emissionRate:         DefaultEmissionRate,
		minSpeed:             DefaultMinSpeed,
		maxSpeed:             DefaultMaxSpeed,
		minLifetime:          DefaultMinLifetime,
		maxLifetime:          DefaultMaxLifetime,
	}
}

// Update advances the emitter by dt seconds and spawns any emissions that
// fell due. Fractional time carries over between calls.
func (e *Emitter) Update(dt float32) {
	e.elapsed += dt
	e.active = e.elapsed < e.duration
	if !e.active {
		return
	}

	e.accumulator += dt
	interval := 1 / e.emissionRate
	// Non-positive or NaN rates never emit.
	if !(interval > 0) || e.accumulator < interval {
		return
	}

	emissions := int(math.Floor(float64(e.accumulator / interval)))
	e.accumulator -= float32(emissions) * interval
	// Float rounding can leave the remainder a hair above one interval.
	for e.accumulator >= interval {
		e.accumulator -= interval
		emissions++
	}
	if e.accumulator < 0 {
		e.accumulator = 0
	}

	for n := emissions * e.particlesPerEmission; n > 0; n-- {
		e.emit()
	}
}

func (e *Emitter) emit() {
	dir := e.sampler.SampleDirectional(e.direction, e.angle).Normalized()
	speed := e.sampler.SampleScalar(e.minSpeed, e.maxSpeed)
	lifetime := e.sampler.SampleScalar(e.minLifetime, e.maxLifetime)

	e.sink.Spawn(e.position, dir.Scale(speed), e.particleColor(), lifetime)
	e.emitted++
}

func (e *Emitter) particleColor() components.Color {
	if e.jitter == 0 {
		return e.color
	}
	c := e.color
	c.R = e.jitterChannel(c.R)
	c.G = e.jitterChannel(c.G)
	c.B = e.jitterChannel(c.B)
	return c
}

func (e *Emitter) jitterChannel(v uint8) uint8 {
	lo := max(int(v)-int(e.jitter), 0)
	hi := min(int(v)+int(e.jitter), 255)
	return e.sampler.SampleUnsigned(uint8(lo), uint8(hi))
}

// Validate reports settings that would make Update misbehave.
func (e *Emitter) Validate() error {
	switch {
	case !(e.emissionRate > 0):
		return fmt.Errorf("%w: emission rate %v must be positive", ErrInvalidEmitter, e.emissionRate)
	case e.particlesPerEmission <= 0:
		return fmt.Errorf("%w: particles per emission %d must be positive", ErrInvalidEmitter, e.particlesPerEmission)
	case e.minSpeed > e.maxSpeed:
		return fmt.Errorf("%w: speed range [%v, %v] is inverted", ErrInvalidEmitter, e.minSpeed, e.maxSpeed)
	case e.minLifetime > e.maxLifetime:
		return fmt.Errorf("%w: lifetime range [%v, %v] is inverted", ErrInvalidEmitter, e.minLifetime, e.maxLifetime)
	case !(e.minLifetime > 0):
		return fmt.Errorf("%w: minimum lifetime %v must be positive", ErrInvalidEmitter, e.minLifetime)
	case e.angle < 0:
		return fmt.Errorf("%w: spread angle %v is negative", ErrInvalidEmitter, e.angle)
	}
	return nil
}

// Restart rewinds the emitter to the start of its duration.
func (e *Emitter) Restart() {
	e.elapsed = 0
	e.accumulator = 0
	e.active = e.duration > 0
}

// Deactivate moves the emitter straight to its expired state.
func (e *Emitter) Deactivate() {
	e.elapsed = e.duration
	e.active = false
}

// ID returns the identifier assigned by the owning system (0 if unowned).
func (e *Emitter) ID() EmitterID { return e.id }

// Active reports whether the emitter was active after its last update.
func (e *Emitter) Active() bool { return e.active }

// Expired reports whether elapsed has reached duration.
func (e *Emitter) Expired() bool { return e.elapsed >= e.duration }

// Elapsed returns seconds since creation or the last timer reset.
func (e *Emitter) Elapsed() float32 { return e.elapsed }

// Accumulator returns the carried-over emission time.
func (e *Emitter) Accumulator() float32 { return e.accumulator }

// Emitted returns how many particles this emitter has spawned.
func (e *Emitter) Emitted() int { return e.emitted }

// Position returns the emission origin.
func (e *Emitter) Position() components.Vec2 { return e.position }

// Direction returns the emission direction (zero = isotropic).
func (e *Emitter) Direction() components.Vec2 { return e.direction }

// Angle returns the spread angle in radians.
func (e *Emitter) Angle() float32 { return e.angle }

// Color returns the color applied to spawned particles.
func (e *Emitter) Color() components.Color { return e.color }

// ColorJitter returns the per-channel color variation.
func (e *Emitter) ColorJitter() uint8 { return e.jitter }

// Duration returns the active duration in seconds.
func (e *Emitter) Duration() float32 { return e.duration }

// EmissionRate returns emissions per second.
func (e *Emitter) EmissionRate() float32 { return e.emissionRate }

// ParticlesPerEmission returns how many particles each emission spawns.
func (e *Emitter) ParticlesPerEmission() int { return e.particlesPerEmission }

// SpeedRange returns the sampled speed bounds.
func (e *Emitter) SpeedRange() (min, max float32) { return e.minSpeed, e.maxSpeed }

// LifetimeRange returns the sampled lifetime bounds.
func (e *Emitter) LifetimeRange() (min, max float32) { return e.minLifetime, e.maxLifetime }

// SetDuration sets the active duration and resets elapsed to 0.
func (e *Emitter) SetDuration(d float32) {
	e.duration = d
	e.elapsed = 0
}

// SetEmissionRate sets emissions per second and clears the accumulator.
func (e *Emitter) SetEmissionRate(rate float32) {
	e.emissionRate = rate
	e.accumulator = 0
}

// SetActive writes the active flag and resets elapsed to 0.
//
// Writing false does not stop the emitter: the next Update recomputes the
// flag from elapsed and duration. Use Deactivate to stop it and Restart to
// rewind it.
func (e *Emitter) SetActive(active bool) {
	e.active = active
	e.elapsed = 0
}

// SetPosition moves the emission origin.
func (e *Emitter) SetPosition(p components.Vec2) { e.position = p }

// SetDirection sets the emission direction. Only its angle matters; the
// speed range alone sets particle speed.
func (e *Emitter) SetDirection(d components.Vec2) { e.direction = d }

// SetAngle sets the spread angle in radians.
func (e *Emitter) SetAngle(a float32) { e.angle = a }

// SetColor sets the color of spawned particles.
func (e *Emitter) SetColor(c components.Color) { e.color = c }

// SetColorJitter varies each RGB channel of spawned particles by up to j.
func (e *Emitter) SetColorJitter(j uint8) { e.jitter = j }

// SetParticlesPerEmission sets how many particles each emission spawns.
func (e *Emitter) SetParticlesPerEmission(n int) { e.particlesPerEmission = n }

// SetSpeedRange sets the sampled speed bounds.
func (e *Emitter) SetSpeedRange(min, max float32) {
	e.minSpeed, e.maxSpeed = min, max
}

// SetLifetimeRange sets the sampled lifetime bounds.
func (e *Emitter) SetLifetimeRange(min, max float32) {
	e.minLifetime, e.maxLifetime = min, max
}

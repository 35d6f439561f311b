package uim

import "golang.org/x/exp/slices"

// InputConfigRepository holds the five content-addressed input-config
// lists (spec.md §4.3). Insertion is idempotent on Hash-Id: inserting a
// value equal to an existing one is a no-op and returns the existing
// id. Channel contexts are reachable only transitively, through the
// sensor contexts that reference them.
type InputConfigRepository struct {
	environments    []*Environment
	providers       []*InkInputProvider
	devices         []*InputDevice
	sensorContexts  []*SensorContext
	inputContexts   []*InputContext
	environmentByID map[ID]*Environment
	providerByID    map[ID]*InkInputProvider
	deviceByID      map[ID]*InputDevice
	channelByID     map[ID]*SensorChannel
	channelCtxByID  map[ID]*SensorChannelsContext
	sensorCtxByID   map[ID]*SensorContext
	inputCtxByID    map[ID]*InputContext
}

// NewInputConfigRepository returns an empty repository.
func NewInputConfigRepository() *InputConfigRepository {
	return &InputConfigRepository{
		environmentByID: make(map[ID]*Environment),
		providerByID:    make(map[ID]*InkInputProvider),
		deviceByID:      make(map[ID]*InputDevice),
		channelByID:     make(map[ID]*SensorChannel),
		channelCtxByID:  make(map[ID]*SensorChannelsContext),
		sensorCtxByID:   make(map[ID]*SensorContext),
		inputCtxByID:    make(map[ID]*InputContext),
	}
}

// HasConfiguration reports whether any of providers, devices, or sensor
// contexts is non-empty (spec.md §4.3).
func (r *InputConfigRepository) HasConfiguration() bool {
	return len(r.providers) > 0 || len(r.devices) > 0 || len(r.sensorContexts) > 0
}

// AddEnvironment inserts env if no equal environment is already
// present, and returns its id either way.
func (r *InputConfigRepository) AddEnvironment(env *Environment) ID {
	id := env.ID()
	if _, ok := r.environmentByID[id]; !ok {
		r.environmentByID[id] = env
		r.environments = append(r.environments, env)
	}
	return id
}

// Environment looks up a previously inserted environment by id.
func (r *InputConfigRepository) Environment(id ID) (*Environment, error) {
	if e, ok := r.environmentByID[id]; ok {
		return e, nil
	}
	return nil, &NotFoundError{Kind: "environment", Key: id.SForm()}
}

// Environments returns the environments in insertion order.
func (r *InputConfigRepository) Environments() []*Environment { return r.environments }

func (r *InputConfigRepository) AddProvider(p *InkInputProvider) ID {
	id := p.ID()
	if _, ok := r.providerByID[id]; !ok {
		r.providerByID[id] = p
		r.providers = append(r.providers, p)
	}
	return id
}

func (r *InputConfigRepository) Provider(id ID) (*InkInputProvider, error) {
	if p, ok := r.providerByID[id]; ok {
		return p, nil
	}
	return nil, &NotFoundError{Kind: "input provider", Key: id.SForm()}
}

func (r *InputConfigRepository) Providers() []*InkInputProvider { return r.providers }

func (r *InputConfigRepository) AddDevice(d *InputDevice) ID {
	id := d.ID()
	if _, ok := r.deviceByID[id]; !ok {
		r.deviceByID[id] = d
		r.devices = append(r.devices, d)
	}
	return id
}

func (r *InputConfigRepository) Device(id ID) (*InputDevice, error) {
	if d, ok := r.deviceByID[id]; ok {
		return d, nil
	}
	return nil, &NotFoundError{Kind: "input device", Key: id.SForm()}
}

func (r *InputConfigRepository) Devices() []*InputDevice { return r.devices }

// AddChannel registers a sensor channel so it can be resolved by id
// from within a channels-context, without itself appearing in a
// top-level list (it is reachable only transitively).
func (r *InputConfigRepository) AddChannel(c *SensorChannel) ID {
	id := c.ID()
	if _, ok := r.channelByID[id]; !ok {
		r.channelByID[id] = c
	}
	return id
}

func (r *InputConfigRepository) Channel(id ID) (*SensorChannel, error) {
	if c, ok := r.channelByID[id]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "sensor channel", Key: id.SForm()}
}

func (r *InputConfigRepository) AddChannelsContext(c *SensorChannelsContext) ID {
	id := c.ID()
	if _, ok := r.channelCtxByID[id]; !ok {
		r.channelCtxByID[id] = c
		for _, ch := range c.Channels {
			r.AddChannel(ch)
		}
	}
	return id
}

func (r *InputConfigRepository) ChannelsContext(id ID) (*SensorChannelsContext, error) {
	if c, ok := r.channelCtxByID[id]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "sensor channels context", Key: id.SForm()}
}

func (r *InputConfigRepository) AddSensorContext(c *SensorContext) ID {
	id := c.ID()
	if _, ok := r.sensorCtxByID[id]; !ok {
		r.sensorCtxByID[id] = c
		r.sensorContexts = append(r.sensorContexts, c)
		for _, cc := range c.ChannelsContexts {
			r.AddChannelsContext(cc)
		}
	}
	return id
}

func (r *InputConfigRepository) SensorContext(id ID) (*SensorContext, error) {
	if c, ok := r.sensorCtxByID[id]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "sensor context", Key: id.SForm()}
}

func (r *InputConfigRepository) SensorContexts() []*SensorContext { return r.sensorContexts }

func (r *InputConfigRepository) AddInputContext(c *InputContext) ID {
	id := c.ID()
	if _, ok := r.inputCtxByID[id]; !ok {
		r.inputCtxByID[id] = c
		r.inputContexts = append(r.inputContexts, c)
	}
	return id
}

func (r *InputConfigRepository) InputContext(id ID) (*InputContext, error) {
	if c, ok := r.inputCtxByID[id]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Kind: "input context", Key: id.SForm()}
}

func (r *InputConfigRepository) InputContexts() []*InputContext { return r.inputContexts }

// AllChannelIDsFor returns the (deduplicated, stably ordered) set of
// sensor-channel ids that belong to the input context's sensor
// context, used to validate that a sensor-data frame's channel ids all
// belong to the context it references (spec.md §3.3 Invariant).
func (r *InputConfigRepository) AllChannelIDsFor(inputContextID ID) ([]ID, error) {
	ic, err := r.InputContext(inputContextID)
	if err != nil {
		return nil, err
	}
	sc, err := r.SensorContext(ic.SensorContextID)
	if err != nil {
		return nil, err
	}
	var ids []ID
	for _, cc := range sc.ChannelsContexts {
		for _, ch := range cc.Channels {
			id := ch.ID()
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

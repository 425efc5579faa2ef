package backend

// nullProgram is one program held by the null device.
type nullProgram struct {
	desc    ProgramDescriptor
	status  LinkStatus
	ready   bool
	deleted int
}

type nullDeviceImpl struct {
	caps     Capabilities
	programs map[Handle]*nullProgram
	nextID   Handle
	created  int
	parallel bool
	link     func(desc ProgramDescriptor) LinkStatus
}

// NullDevice is an in-memory Device that records every program it is asked for. Programs always link unless a
// link function says otherwise, and uniforms and attributes are reflected from the sources.
type NullDevice interface {
	Device

	// SetCapabilities replaces the reported capabilities.
	SetCapabilities(caps Capabilities)

	// SetParallelCompile makes new programs start unready until Complete is called or their status is queried.
	SetParallelCompile(enabled bool)

	// SetLinkFunc installs the function deciding the link status of new programs. nil restores success.
	SetLinkFunc(link func(desc ProgramDescriptor) LinkStatus)

	// Complete marks a pending program as finished compiling.
	Complete(h Handle)

	// Descriptor returns the sources a program was created from.
	Descriptor(h Handle) (ProgramDescriptor, bool)

	// Created returns the number of programs ever created.
	Created() int

	// Deletions returns how many times DeleteProgram was called with h.
	Deletions(h Handle) int

	// Live returns the number of programs not yet deleted.
	Live() int
}

var _ NullDevice = &nullDeviceImpl{}

// NewNullDevice creates a NullDevice reporting DefaultCapabilities.
func NewNullDevice() NullDevice {
	return &nullDeviceImpl{
		caps:     DefaultCapabilities(),
		programs: make(map[Handle]*nullProgram),
	}
}

func (d *nullDeviceImpl) Type() Type                 { return TypeNull }
func (d *nullDeviceImpl) Capabilities() Capabilities { return d.caps }

func (d *nullDeviceImpl) SetCapabilities(caps Capabilities) { d.caps = caps }
func (d *nullDeviceImpl) SetParallelCompile(enabled bool)   { d.parallel = enabled }

func (d *nullDeviceImpl) SetLinkFunc(link func(desc ProgramDescriptor) LinkStatus) {
	d.link = link
}

func (d *nullDeviceImpl) CreateProgram(desc ProgramDescriptor) (Handle, error) {
	d.nextID++
	d.created++
	status := LinkStatus{Linked: true}
	if d.link != nil {
		status = d.link(desc)
	}
	d.programs[d.nextID] = &nullProgram{desc: desc, status: status, ready: !d.parallel}
	return d.nextID, nil
}

func (d *nullDeviceImpl) live(h Handle) (*nullProgram, bool) {
	p, ok := d.programs[h]
	if !ok || p.deleted > 0 {
		return nil, false
	}
	return p, true
}

func (d *nullDeviceImpl) ProgramReady(h Handle) bool {
	p, ok := d.live(h)
	return ok && p.ready
}

func (d *nullDeviceImpl) Complete(h Handle) {
	if p, ok := d.live(h); ok {
		p.ready = true
	}
}

func (d *nullDeviceImpl) LinkStatus(h Handle) LinkStatus {
	p, ok := d.live(h)
	if !ok {
		return LinkStatus{}
	}
	p.ready = true
	return p.status
}

func (d *nullDeviceImpl) ActiveUniforms(h Handle) []ActiveInfo {
	p, ok := d.live(h)
	if !ok || !p.status.Linked {
		return nil
	}
	p.ready = true
	return reflectUniforms(p.desc)
}

func (d *nullDeviceImpl) ActiveAttributes(h Handle) []ActiveInfo {
	p, ok := d.live(h)
	if !ok || !p.status.Linked {
		return nil
	}
	p.ready = true
	return reflectAttributes(p.desc)
}

func (d *nullDeviceImpl) DeleteProgram(h Handle) {
	if p, ok := d.programs[h]; ok {
		p.deleted++
	}
}

func (d *nullDeviceImpl) Descriptor(h Handle) (ProgramDescriptor, bool) {
	p, ok := d.programs[h]
	if !ok {
		return ProgramDescriptor{}, false
	}
	return p.desc, true
}

func (d *nullDeviceImpl) Created() int { return d.created }

func (d *nullDeviceImpl) Deletions(h Handle) int {
	if p, ok := d.programs[h]; ok {
		return p.deleted
	}
	return 0
}

func (d *nullDeviceImpl) Live() int {
	n := 0
	for _, p := range d.programs {
		if p.deleted == 0 {
			n++
		}
	}
	return n
}

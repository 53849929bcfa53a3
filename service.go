package gatt

// A Service is a BLE service.
// Calls to AddCharacteristic must occur before the
// service is added to a server.
type Service struct {
	uuid  UUID
	chars []*Characteristic
	h     uint16 // base handle; set by Server.AddService
}

// NewService creates and initializes a new Service using u as its UUID.
func NewService(u UUID) *Service {
	return &Service{uuid: u}
}

// AddCharacteristic adds a characteristic to a service.
// At most fifteen characteristics fit in a service's handle space.
func (s *Service) AddCharacteristic(u UUID) *Characteristic {
	char := &Characteristic{
		service: s,
		uuid:    u,
	}
	s.chars = append(s.chars, char)
	return char
}

// UUID returns the service's UUID.
func (s *Service) UUID() UUID { return s.uuid }

// Characteristics returns the service's characteristics.
func (s *Service) Characteristics() []*Characteristic { return s.chars }

// Handle returns the service's base handle, or 0 before registration.
func (s *Service) Handle() uint16 { return s.h }

// EndHandle returns the service's group end handle, or 0 before
// registration.
func (s *Service) EndHandle() uint16 {
	if s.h == 0 {
		return 0
	}
	return serviceLastHandle(s.h)
}

// validate checks that s fits the handle encoding.
func (s *Service) validate() error {
	if len(s.chars) > maxCharacteristics {
		return errorf(ErrTooManyCharacteristics, "service %s has %d", s.uuid, len(s.chars))
	}
	for _, c := range s.chars {
		if len(c.descs) > maxDescriptors {
			return errorf(ErrTooManyDescriptors, "characteristic %s has %d", c.uuid, len(c.descs))
		}
		for _, d := range c.descs {
			if !d.UUID().IsSIG() {
				return errorf(ErrDescriptorUUID, "characteristic %s: %s", c.uuid, d.UUID())
			}
		}
	}
	return nil
}

// assign records the handles of s and its characteristics.
func (s *Service) assign(h uint16) {
	s.h = h
	for i, c := range s.chars {
		c.h = charHandle(h, i)
	}
}

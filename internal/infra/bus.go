package infra

// StageType identifies a stage of the analytics pipeline.
type StageType int

const (
	RawRowsLoaded StageType = iota
	MappingResolved
	RecordsNormalized
	MetricsComputed
	ReportExported
	ReportStored
)

// String returns the string representation of the StageType
func (st StageType) String() string {
	switch st {
	case RawRowsLoaded:
		return "RawRowsLoaded"
	case MappingResolved:
		return "MappingResolved"
	case RecordsNormalized:
		return "RecordsNormalized"
	case MetricsComputed:
		return "MetricsComputed"
	case ReportExported:
		return "ReportExported"
	case ReportStored:
		return "ReportStored"
	default:
		return "Unknown"
	}
}

// StageEvent is published as each pipeline stage completes. Count carries
// the stage's primary cardinality (rows loaded, records normalized, rooms
// computed); Detail is free-form.
type StageEvent struct {
	Stage  StageType
	Count  int
	Detail string
}

type Handler func(StageEvent)
type Bus struct{ subs map[StageType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[StageType][]Handler{}} }
func (b *Bus) Publish(e StageEvent) {
	for _, h := range b.subs[e.Stage] {
		h(e)
	}
}
func (b *Bus) Subscribe(stage StageType, h Handler) { b.subs[stage] = append(b.subs[stage], h) }

// SubscribeAll attaches a handler to every pipeline stage.
func (b *Bus) SubscribeAll(h Handler) {
	for stage := RawRowsLoaded; stage <= ReportStored; stage++ {
		b.Subscribe(stage, h)
	}
}

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Граф
	AttrGraphNodes    = "graph.nodes"
	AttrGraphEdges    = "graph.edges"
	AttrGraphVesselID = "graph.vessel_class_id"
	AttrGraphSourceID = "graph.source_id"
	AttrGraphSinkID   = "graph.sink_id"

	// Каскад (§4.6)
	AttrStageName      = "cascade.stage"
	AttrStageAccepted  = "cascade.accepted"
	AttrStageDiscarded = "cascade.discarded"

	// Пул колонок
	AttrPoolSize         = "pool.size"
	AttrProblemReference = "pool.problem_reference"

	// Лямбда-развёртка (§4.4)
	AttrLambda = "lambda.value"
)

// GraphAttributes возвращает атрибуты графа класса судов.
func GraphAttributes(nodes, edges int, vesselClassID string, sourceID, sinkID int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrGraphNodes, nodes),
		attribute.Int(AttrGraphEdges, edges),
		attribute.String(AttrGraphVesselID, vesselClassID),
		attribute.Int64(AttrGraphSourceID, sourceID),
		attribute.Int64(AttrGraphSinkID, sinkID),
	}
}

// StageAttributes возвращает атрибуты одного этапа каскада.
func StageAttributes(stage string, accepted, discarded int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrStageName, stage),
		attribute.Int(AttrStageAccepted, accepted),
		attribute.Int(AttrStageDiscarded, discarded),
	}
}

// PoolAttributes возвращает атрибуты пула колонок.
func PoolAttributes(problemReference string, size int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrProblemReference, problemReference),
		attribute.Int(AttrPoolSize, size),
	}
}

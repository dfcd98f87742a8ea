package engine

import (
	"log"
	"sync/atomic"
)

// CutStatistics collects counts for each pruning/cutoff mechanism.
// Workers update it concurrently.
type CutStatistics struct {
	Nodes            atomic.Uint64
	QNodes           atomic.Uint64
	TTHits           atomic.Uint64
	TTCutoffs        atomic.Uint64
	BetaCutoffs      atomic.Uint64
	QStandPatCutoffs atomic.Uint64
	QBetaCutoffs     atomic.Uint64
}

func (cs *CutStatistics) reset() {
	cs.Nodes.Store(0)
	cs.QNodes.Store(0)
	cs.TTHits.Store(0)
	cs.TTCutoffs.Store(0)
	cs.BetaCutoffs.Store(0)
	cs.QStandPatCutoffs.Store(0)
	cs.QBetaCutoffs.Store(0)
}

func (cs *CutStatistics) dump(l *log.Logger) {
	l.Println("info string Cut statistics:")
	l.Printf("info string   Nodes: %d (quiescence %d)", cs.Nodes.Load(), cs.QNodes.Load())
	l.Printf("info string   TT hits: %d", cs.TTHits.Load())
	l.Printf("info string   TT cutoffs: %d", cs.TTCutoffs.Load())
	l.Printf("info string   Beta cutoffs: %d", cs.BetaCutoffs.Load())
	l.Printf("info string   QStandPat cutoffs: %d", cs.QStandPatCutoffs.Load())
	l.Printf("info string   QBeta cutoffs: %d", cs.QBetaCutoffs.Load())
}

func (cs *CutStatistics) snapshot() Stats {
	return Stats{
		Nodes:            cs.Nodes.Load(),
		QNodes:           cs.QNodes.Load(),
		TTHits:           cs.TTHits.Load(),
		TTCutoffs:        cs.TTCutoffs.Load(),
		BetaCutoffs:      cs.BetaCutoffs.Load(),
		QStandPatCutoffs: cs.QStandPatCutoffs.Load(),
		QBetaCutoffs:     cs.QBetaCutoffs.Load(),
	}
}

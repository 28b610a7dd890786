package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"

	"github.com/pathpilot/pathpilot/pkg/concurrent"
	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

var ErrEdgesNotFound = errors.New("edges not found")

// edgeIndexResolution is the h3 cell resolution used to bucket road
// segments (~0.1 km2 cells).
const edgeIndexResolution = 9

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// BuildH3IndexedEdges buckets every road segment of the graph by the h3 cell
// of its center point and persists the buckets, so snapping can pull nearby
// streets for a coordinate without touching the graph.
func (k *KVDB) BuildH3IndexedEdges(ctx context.Context, g *datastructure.Graph) error {
	log.Printf("creating & saving h3 indexed streets to key-value db...")

	buckets := make(map[string][]datastructure.KVEdge)
	g.ForEachEdge(func(e *datastructure.Edge) {
		from, okFrom := g.NodeByID(e.From)
		to, okTo := g.NodeByID(e.To)
		if !okFrom || !okTo {
			return
		}

		centerLat := (from.Lat + to.Lat) / 2
		centerLon := (from.Lon + to.Lon) / 2
		cell := h3.LatLngToCell(h3.NewLatLng(centerLat, centerLon), edgeIndexResolution)

		buckets[cell.String()] = append(buckets[cell.String()], datastructure.KVEdge{
			CenterLoc:  [2]float64{centerLat, centerLon},
			FromNodeID: e.From,
			ToNodeID:   e.To,
			StreetName: e.StreetName,
			Length:     e.Length,
		})
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled")
	default:
	}

	wp := concurrent.NewWorkerPool[concurrent.SaveEdgesJobItem, error](4, len(buckets))
	wp.Start(k.saveEdgesJob)
	for key, edges := range buckets {
		wp.AddJob(concurrent.SaveEdgesJobItem{KeyStr: key, ValArr: edges})
	}
	wp.CloseJobQueue()
	wp.Wait()

	for err := range wp.CollectResults() {
		if err != nil {
			return err
		}
	}

	log.Printf("creating & saving h3 indexed streets to key-value db done (%d cells)", len(buckets))
	return nil
}

func (k *KVDB) saveEdgesJob(job concurrent.SaveEdgesJobItem) error {
	val, err := encodeEdges(job.ValArr)
	if err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(job.KeyStr), val)
	})
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *KVDB) cellEdges(cell h3.Cell) ([]datastructure.KVEdge, error) {
	val, err := k.get([]byte(cell.String()))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loadEdges(val)
}

// GetNearestStreetsFromPointCoord returns the stored road segments around
// (lat, lon), widening the search ring by ring when the home cell is empty.
func (k *KVDB) GetNearestStreetsFromPointCoord(lat, lon float64) ([]datastructure.KVEdge, error) {
	home := h3.LatLngToCell(h3.NewLatLng(lat, lon), edgeIndexResolution)

	edges, err := k.cellEdges(home)
	if err != nil {
		return nil, err
	}

	if len(edges) == 0 {
		for _, cell := range kRingIndexesArea(lat, lon, 1) {
			if cell == home {
				continue
			}
			more, err := k.cellEdges(cell)
			if err != nil {
				return nil, err
			}
			edges = append(edges, more...)
		}
	}

	for level := 1; level <= 10 && len(edges) == 0; level++ {
		for _, cell := range h3.GridDisk(home, level) {
			if cell == home {
				continue
			}
			more, err := k.cellEdges(cell)
			if err != nil {
				return nil, err
			}
			edges = append(edges, more...)
		}
	}

	if len(edges) == 0 {
		return nil, ErrEdgesNotFound
	}
	return edges, nil
}

// kRingIndexesArea returns the disk of cells whose combined area covers a
// circle of searchRadiusKm around the point.
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), edgeIndexResolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea
	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *KVDB) Close() {
	k.db.Close()
}

package selfplay

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type PlyRecord struct {
	Ply    int32  `parquet:"name=ply, type=INT32"`
	Move   string `parquet:"name=move, type=BYTE_ARRAY, convertedtype=UTF8"`
	Score  int32  `parquet:"name=score, type=INT32"`
	Depth  int32  `parquet:"name=depth, type=INT32"`
	Source string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8"`
	Nodes  int64  `parquet:"name=nodes, type=INT64"`
	TimeMs int64  `parquet:"name=time_ms, type=INT64"`
}

// GameRecord is one archived game, one row per game.
type GameRecord struct {
	GameID     string      `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	StartFEN   string      `parquet:"name=start_fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result     string      `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	Reason     string      `parquet:"name=reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	PlyCount   int32       `parquet:"name=ply_count, type=INT32"`
	DurationMs int64       `parquet:"name=duration_ms, type=INT64"`
	Plies      []PlyRecord `parquet:"name=plies, type=LIST"`
}

// NewGameRecord flattens a summary for the archive.
func NewGameRecord(s Summary) GameRecord {
	rec := GameRecord{
		GameID:     s.ID,
		StartFEN:   s.StartFEN,
		Result:     s.Result.String(),
		Reason:     s.Reason.String(),
		PlyCount:   int32(len(s.Records)),
		DurationMs: s.Duration.Milliseconds(),
	}
	for i, r := range s.Records {
		pr := PlyRecord{Ply: int32(r.Ply), Move: r.Notation}
		if i < len(s.Plies) {
			p := s.Plies[i]
			pr.Score = int32(p.Score)
			pr.Depth = int32(p.Depth)
			pr.Source = p.Source.String()
			pr.Nodes = int64(p.Nodes)
			pr.TimeMs = p.Elapsed.Milliseconds()
		}
		rec.Plies = append(rec.Plies, pr)
	}
	return rec
}

// ArchiveWriter streams games into a Snappy-compressed Parquet file.
type ArchiveWriter struct {
	file source.ParquetFile
	pw   *writer.ParquetWriter
}

func NewArchiveWriter(path string, parallel int64) (*ArchiveWriter, error) {
	if parallel <= 0 {
		parallel = 1
	}
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, err
	}
	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(GameRecord), parallel)
	if err != nil {
		fileWriter.Close()
		return nil, err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY
	return &ArchiveWriter{file: fileWriter, pw: parquetWriter}, nil
}

func (a *ArchiveWriter) Write(s Summary) error {
	return a.pw.Write(NewGameRecord(s))
}

// Close flushes the footer and closes the file.
func (a *ArchiveWriter) Close() error {
	if err := a.pw.WriteStop(); err != nil {
		a.file.Close()
		return err
	}
	return a.file.Close()
}

// ReadArchive loads every game of an archive.
func ReadArchive(path string, parallel int64) ([]GameRecord, error) {
	if parallel <= 0 {
		parallel = 1
	}
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(GameRecord), parallel)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	records := make([]GameRecord, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		remain := num - offset
		if remain < batchSize {
			batchSize = remain
		}
		batch := make([]GameRecord, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return records, nil
}

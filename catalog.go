package sgf

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bodgit/sgf/scan"
	_ "github.com/mattn/go-sqlite3"
)

// Entry describes a converted image
type Entry struct {
	// Path is the source file the image was converted from
	Path string
	// SHA1 is the hex digest of the source file contents
	SHA1 string
	// Params describes the options the image was encoded with
	Params     string
	Width      int
	Height     int
	Colors     int
	Order      scan.Order
	SourceSize int64
	// Size is the size of the encoded image
	Size int
	// Duration is how long the encode took
	Duration time.Duration
	Data     []byte
}

// Ratio returns the encoded size as a percentage of the source size
func (e *Entry) Ratio() float64 {
	if e.SourceSize == 0 {
		return 0
	}
	return float64(e.Size) / float64(e.SourceSize) * 100
}

// Catalog is a database of converted images, keyed by the digest of their
// source file and the options used to encode it
type Catalog struct {
	db *sql.DB
}

func OpenCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, params TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, colors INTEGER NOT NULL, scan_order INTEGER NOT NULL, source_size INTEGER NOT NULL, duration INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, params))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS file (path TEXT NOT NULL UNIQUE, image_id INTEGER NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Lookup returns the image converted from a source with the given digest
// using the given encoding parameters, or nil if there isn't one
func (c *Catalog) Lookup(sha1, params string) (*Entry, error) {
	e := Entry{SHA1: sha1, Params: params}
	switch err := c.db.QueryRow("SELECT width, height, colors, scan_order, source_size, duration, data FROM image WHERE sha1 = ? AND params = ?", sha1, params).Scan(&e.Width, &e.Height, &e.Colors, &e.Order, &e.SourceSize, &e.Duration, &e.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		e.Size = len(e.Data)
		return &e, nil
	default:
		return nil, err
	}
}

func (c *Catalog) addImage(e *Entry) (int64, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO image (sha1, params, width, height, colors, scan_order, source_size, duration, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", e.SHA1, e.Params, e.Width, e.Height, e.Colors, e.Order, e.SourceSize, e.Duration, e.Data); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM image WHERE sha1 = ? AND params = ?", e.SHA1, e.Params).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Add records that e.Path was converted to e. An image already stored under
// the same digest and parameters is kept and the path is pointed at it.
func (c *Catalog) Add(e *Entry) error {
	id, err := c.addImage(e)
	if err != nil {
		return err
	}

	if _, err := c.db.Exec("INSERT OR REPLACE INTO file (path, image_id) VALUES (?, ?)", e.Path, id); err != nil {
		return err
	}
	return nil
}

// Entries returns every converted file ordered by path. The image data is
// not loaded.
func (c *Catalog) Entries() ([]Entry, error) {
	rows, err := c.db.Query("SELECT f.path, i.sha1, i.params, i.width, i.height, i.colors, i.scan_order, i.source_size, i.duration, length(i.data) FROM file AS f JOIN image AS i ON f.image_id = i.id ORDER BY f.path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.SHA1, &e.Params, &e.Width, &e.Height, &e.Colors, &e.Order, &e.SourceSize, &e.Duration, &e.Size); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

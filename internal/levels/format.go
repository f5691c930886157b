package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// The yaml* types mirror the file layout. Required scalars are pointers so a
// missing field can be told apart from a zero value. JSON documents decode
// through the same types since JSON is valid YAML.

type yamlLevel struct {
	Name      string          `yaml:"name"`
	Player    *yamlPlayer     `yaml:"player"`
	Goal      *yamlRect       `yaml:"goal"`
	Key       *yamlRect       `yaml:"key"`
	Obstacles *[]yamlObstacle `yaml:"obstacles"`
	Coins     []yamlCoin      `yaml:"coins"`
	TileMap   [][]int         `yaml:"tileMap"`
	TileSize  *int            `yaml:"tileSize"`
}

type yamlPlayer struct {
	X     *float64 `yaml:"x"`
	Y     *float64 `yaml:"y"`
	Size  *float64 `yaml:"size"`
	Speed *float64 `yaml:"speed"`
}

type yamlRect struct {
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`
}

type yamlObstacle struct {
	X          *float64   `yaml:"x"`
	Y          *float64   `yaml:"y"`
	Radius     *float64   `yaml:"radius"`
	Speed      *float64   `yaml:"speed"`
	Horizontal *bool      `yaml:"horizontal"`
	Barriers   []yamlRect `yaml:"customBounceBarriers"`
}

type yamlCoin struct {
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Radius *float64 `yaml:"radius"`
}

// fieldError records the first problem found while converting a level.
type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

func missing(field string) error {
	return &fieldError{field: field, msg: "required field missing"}
}

func need(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, missing(field)
	}
	return *v, nil
}

func needPositive(field string, v *float64) (float64, error) {
	f, err := need(field, v)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, &fieldError{field: field, msg: fmt.Sprintf("must be positive, got %v", f)}
	}
	return f, nil
}

// decodeLevel decodes and validates one level node.
func decodeLevel(node *yaml.Node) (Definition, error) {
	var yl yamlLevel
	if err := node.Decode(&yl); err != nil {
		return Definition{}, &fieldError{field: "level", msg: err.Error()}
	}
	return yl.toDefinition()
}

func (yl yamlLevel) toDefinition() (Definition, error) {
	def := Definition{Name: yl.Name}

	if yl.Player == nil {
		return Definition{}, missing("player")
	}
	player, err := yl.Player.toDef()
	if err != nil {
		return Definition{}, err
	}
	def.Player = player

	if yl.Goal == nil {
		return Definition{}, missing("goal")
	}
	goal, err := yl.Goal.toDef("goal")
	if err != nil {
		return Definition{}, err
	}
	def.Goal = goal

	if yl.Key != nil {
		key, err := yl.Key.toDef("key")
		if err != nil {
			return Definition{}, err
		}
		def.Key = &key
	}

	if yl.Obstacles == nil {
		return Definition{}, missing("obstacles")
	}
	def.Obstacles = make([]ObstacleDef, 0, len(*yl.Obstacles))
	for i, yo := range *yl.Obstacles {
		o, err := yo.toDef(fmt.Sprintf("obstacles[%d]", i))
		if err != nil {
			return Definition{}, err
		}
		def.Obstacles = append(def.Obstacles, o)
	}

	def.Coins = make([]CoinDef, 0, len(yl.Coins))
	for i, yc := range yl.Coins {
		prefix := fmt.Sprintf("coins[%d]", i)
		x, err := need(prefix+".x", yc.X)
		if err != nil {
			return Definition{}, err
		}
		y, err := need(prefix+".y", yc.Y)
		if err != nil {
			return Definition{}, err
		}
		r, err := needPositive(prefix+".radius", yc.Radius)
		if err != nil {
			return Definition{}, err
		}
		def.Coins = append(def.Coins, CoinDef{X: x, Y: y, Radius: r})
	}

	if yl.TileMap != nil {
		tiles, size, err := convertTileMap(yl.TileMap, yl.TileSize)
		if err != nil {
			return Definition{}, err
		}
		def.TileMap = tiles
		def.TileSize = size
	}

	return def, nil
}

func (yp yamlPlayer) toDef() (PlayerDef, error) {
	x, err := need("player.x", yp.X)
	if err != nil {
		return PlayerDef{}, err
	}
	y, err := need("player.y", yp.Y)
	if err != nil {
		return PlayerDef{}, err
	}
	size, err := needPositive("player.size", yp.Size)
	if err != nil {
		return PlayerDef{}, err
	}
	speed, err := need("player.speed", yp.Speed)
	if err != nil {
		return PlayerDef{}, err
	}
	if speed < 0 {
		return PlayerDef{}, &fieldError{field: "player.speed", msg: "must not be negative"}
	}
	return PlayerDef{X: x, Y: y, Size: size, Speed: speed}, nil
}

func (yr yamlRect) toDef(prefix string) (RectDef, error) {
	x, err := need(prefix+".x", yr.X)
	if err != nil {
		return RectDef{}, err
	}
	y, err := need(prefix+".y", yr.Y)
	if err != nil {
		return RectDef{}, err
	}
	w, err := needPositive(prefix+".width", yr.Width)
	if err != nil {
		return RectDef{}, err
	}
	h, err := needPositive(prefix+".height", yr.Height)
	if err != nil {
		return RectDef{}, err
	}
	return RectDef{X: x, Y: y, Width: w, Height: h}, nil
}

func (yo yamlObstacle) toDef(prefix string) (ObstacleDef, error) {
	x, err := need(prefix+".x", yo.X)
	if err != nil {
		return ObstacleDef{}, err
	}
	y, err := need(prefix+".y", yo.Y)
	if err != nil {
		return ObstacleDef{}, err
	}
	r, err := needPositive(prefix+".radius", yo.Radius)
	if err != nil {
		return ObstacleDef{}, err
	}
	speed, err := need(prefix+".speed", yo.Speed)
	if err != nil {
		return ObstacleDef{}, err
	}
	if yo.Horizontal == nil {
		return ObstacleDef{}, missing(prefix + ".horizontal")
	}

	barriers := make([]RectDef, 0, len(yo.Barriers))
	for i, yb := range yo.Barriers {
		b, err := yb.toDef(fmt.Sprintf("%s.customBounceBarriers[%d]", prefix, i))
		if err != nil {
			return ObstacleDef{}, err
		}
		barriers = append(barriers, b)
	}

	return ObstacleDef{
		X:          x,
		Y:          y,
		Radius:     r,
		Speed:      speed,
		Horizontal: *yo.Horizontal,
		Barriers:   barriers,
	}, nil
}

// convertTileMap checks that the map is non-empty, rectangular and uses only
// known tile codes, and returns a private copy.
func convertTileMap(rows [][]int, size *int) ([][]int, int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, 0, &fieldError{field: "tileMap", msg: "empty tile rows"}
	}
	if size == nil {
		return nil, 0, missing("tileSize")
	}
	if *size <= 0 {
		return nil, 0, &fieldError{field: "tileSize", msg: fmt.Sprintf("must be positive, got %d", *size)}
	}

	cols := len(rows[0])
	out := make([][]int, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, 0, &fieldError{
				field: fmt.Sprintf("tileMap[%d]", r),
				msg:   fmt.Sprintf("row has %d tiles, expected %d", len(row), cols),
			}
		}
		for c, code := range row {
			if code != TileGround && code != TileWall && code != TileDoor {
				return nil, 0, &fieldError{
					field: fmt.Sprintf("tileMap[%d][%d]", r, c),
					msg:   fmt.Sprintf("unknown tile code %d", code),
				}
			}
		}
		out[r] = append([]int(nil), row...)
	}
	return out, *size, nil
}

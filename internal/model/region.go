package model

// Region is one of the ten fixed administrative areas customers are
// partitioned by. The set is configuration, not data: it is never persisted
// as its own table and never changes at runtime.
type Region string

const (
	RegionRamallah  Region = "ramallah"
	RegionNablus    Region = "nablus"
	RegionJenin     Region = "jenin"
	RegionTulkarm   Region = "tulkarm"
	RegionQalqilya  Region = "qalqilya"
	RegionSalfit    Region = "salfit"
	RegionTubas     Region = "tubas"
	RegionJericho   Region = "jericho"
	RegionBethlehem Region = "bethlehem"
	RegionHebron    Region = "hebron"
)

// Regions lists every valid region in display order.
var Regions = []Region{
	RegionRamallah,
	RegionNablus,
	RegionJenin,
	RegionTulkarm,
	RegionQalqilya,
	RegionSalfit,
	RegionTubas,
	RegionJericho,
	RegionBethlehem,
	RegionHebron,
}

func (r Region) Valid() bool {
	for _, v := range Regions {
		if r == v {
			return true
		}
	}
	return false
}

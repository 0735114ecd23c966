package requests

import "strconv"

func DefaultLabel(id int) string {
	return "P" + strconv.Itoa(id)
}

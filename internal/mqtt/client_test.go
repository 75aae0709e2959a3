package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/switch/my_device/command"
	r := switchCommandRegexp(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "my_device", "device extract")
}

func TestSwitchCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/switch/my_device/state"
	r := switchCommandRegexp(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}

func TestInputNumberCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/number/number_name/set"
	r := inputNumberCommandRegexp(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "number_name", "number_id extract")
}

func TestSelectCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/select/abc123_function/set"
	r := selectCommandRegexp(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "abc123_function", "select id extract")
}

func TestFanCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	r := fanCommandRegexp(baseTopic)

	matches := r.FindAllStringSubmatch("loremTopic/fan/abc123_fan/command", 1)
	assert.Equal(matches[0][1], "abc123_fan", "fan id extract")

	// subcommand topics must not match the power command
	matches = r.FindAllStringSubmatch("loremTopic/fan/abc123_fan/preset/set", 1)
	assert.Equal(len(matches), 0, "no matches")
}

func TestFanSubcommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"

	matches := fanPresetCommandRegexp(baseTopic).FindAllStringSubmatch("loremTopic/fan/abc123_fan/preset/set", 1)
	assert.Equal(matches[0][1], "abc123_fan", "preset fan id extract")

	matches = fanPercentageCommandRegexp(baseTopic).FindAllStringSubmatch("loremTopic/fan/abc123_fan/percentage/set", 1)
	assert.Equal(matches[0][1], "abc123_fan", "percentage fan id extract")

	matches = fanOscillationCommandRegexp(baseTopic).FindAllStringSubmatch("loremTopic/fan/abc123_fan/oscillation/set", 1)
	assert.Equal(matches[0][1], "abc123_fan", "oscillation fan id extract")
}

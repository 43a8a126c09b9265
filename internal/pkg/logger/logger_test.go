package logger

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	mock_producer "github.com/RoyceAzure/lab/shop/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndExtraWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", "warn", &buf)
	require.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	require.Contains(t, buf.String(), `"message":"shown"`)

	require.Equal(t, zerolog.InfoLevel, New("production", "nonsense").GetLevel())
}

func TestKafkaWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	w := mock_producer.NewMockWriter(ctrl)
	kw := NewKafkaWriter(w)

	var keys []uint64
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ any, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			keys = append(keys, binary.BigEndian.Uint64(msgs[0].Key))
			return nil
		})

	buf := []byte(`{"level":"info"}`)
	n, err := kw.Write(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	_, err = kw.Write(buf)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, keys)

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	_, err = kw.Write(buf)
	require.Error(t, err)

	w.EXPECT().Close().Return(nil).Times(1)
	require.NoError(t, kw.Close())
	require.NoError(t, kw.Close())
	_, err = kw.Write(buf)
	require.ErrorIs(t, err, ErrLoggerClosed)
}

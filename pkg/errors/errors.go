// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// モデル構造の契約違反、入力変換エラー、未知の指標名などを構造化されたエラーとして表現します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("forest-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DataConversionWarning は入力値が暗黙的に変換された場合に発生する警告です。
// 例えば、語彙に存在しないカテゴリ値が語彙外（OOV）として扱われた場合など。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("forest: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("forest: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("forest: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はモデル定義の読み書きなど、モデルに関する一般的なエラーです。
// Kind は失敗した処理 (open, create, close など) を表します。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forest: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("forest: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// InvalidModelError はモデル構造がスキーマやタスクと矛盾している場合のエラーです。
// 条件がスキーマ外の列を参照している、葉の値の種類がタスクと一致しない、など。
// 壊れたモデルを示すため、検出した時点で処理を打ち切ります。
type InvalidModelError struct {
	Op        string
	Reason    string
	Attribute int // 関係する列（不明な場合は -1）
}

func (e *InvalidModelError) Error() string {
	if e.Attribute >= 0 {
		return fmt.Sprintf("forest: %s: invalid model: %s (attribute %d)", e.Op, e.Reason, e.Attribute)
	}
	return fmt.Sprintf("forest: %s: invalid model: %s", e.Op, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Int("attribute", e.Attribute).
		Str("type", "InvalidModelError")
}

// NewInvalidModelError は新しいInvalidModelErrorを作成し、スタックトレースを付与します。
func NewInvalidModelError(op, reason string, attribute int) error {
	err := &InvalidModelError{Op: op, Reason: reason, Attribute: attribute}
	return errors.WithStack(err)
}

// UnknownMetricError は未知の変数重要度指標が要求された場合のエラーです。
type UnknownMetricError struct {
	Name      string
	Available []string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("forest: unknown variable importance %q. Available variable importances are: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnknownMetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", e.Name).
		Strs("available", e.Available).
		Str("type", "UnknownMetricError")
}

// NewUnknownMetricError は新しいUnknownMetricErrorを作成し、スタックトレースを付与します。
func NewUnknownMetricError(name string, available []string) error {
	err := &UnknownMetricError{Name: name, Available: available}
	return errors.WithStack(err)
}

// ConversionError は外部レコードの値がスキーマの列型と互換性がない場合のエラーです。
type ConversionError struct {
	Record   int    // レコード番号（単一レコードの場合は -1）
	Column   string // 列名
	Expected string // スキーマ上の型
	Got      string // 外部レコード上の型
}

func (e *ConversionError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("forest: record %d: cannot convert column %q: expected %s, got %s", e.Record, e.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("forest: cannot convert column %q: expected %s, got %s", e.Column, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConversionError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("record", e.Record).
		Str("column", e.Column).
		Str("expected", e.Expected).
		Str("got", e.Got).
		Str("type", "ConversionError")
}

// NewConversionError は新しいConversionErrorを作成し、スタックトレースを付与します。
func NewConversionError(record int, column, expected, got string) error {
	err := &ConversionError{Record: record, Column: column, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyModel は木を一本も持たないモデルに対して推論や集計を行った場合のエラーです。
	ErrEmptyModel = New("model has no trees")
)

package compile

import "github.com/kichikuou-go/sys35c/internal/lexer"

// vmOpcodes assigns a two-byte VM opcode to every synthetic Command: the
// lower-case keyword commands, the DLL-call dispatch marker, and the
// version-gated rewrite targets that replaceCommand produces on System 3.8+.
// emit_command in the reference compiler writes these from a numeric
// Command enum whose defining header was not present in the retrieved
// sources (the same kind of gap already documented for the secondary
// 0xc0-prefixed CALI operators in opcodes.go) — these are self-consistent
// placeholders assigned in declaration order. The compiler and decompiler
// only need to agree with each other for round-trip correctness; `if`,
// `const`, and `pragma` are parser-only keywords and never reach here since
// they emit no opcode of their own.
var vmOpcodes = buildVMOpcodes()

func buildVMOpcodes() map[lexer.Command]uint16 {
	order := []lexer.Command{
		lexer.CommandDLLCall,
		lexer.CommandAinMsg,

		lexer.CommandInc,
		lexer.CommandDec,
		lexer.CommandWavLoad,
		lexer.CommandWavPlay,
		lexer.CommandWavStop,
		lexer.CommandWavUnload,
		lexer.CommandWavIsPlay,
		lexer.CommandWavFade,
		lexer.CommandWavIsFade,
		lexer.CommandWavStopFade,
		lexer.CommandTrace,
		lexer.CommandWav3DSetPos,
		lexer.CommandWav3DCommit,
		lexer.CommandWav3DGetPos,
		lexer.CommandWav3DSetPosL,
		lexer.CommandWav3DGetPosL,
		lexer.CommandWav3DFadePos,
		lexer.CommandWav3DIsFadePos,
		lexer.CommandWav3DStopFadePos,
		lexer.CommandWav3DFadePosL,
		lexer.CommandWav3DIsFadePosL,
		lexer.CommandWav3DStopFadePosL,
		lexer.CommandSndPlay,
		lexer.CommandSndStop,
		lexer.CommandSndIsPlay,
		lexer.CommandMsg,
		lexer.CommandWavWaitTime,
		lexer.CommandWavGetPlayPos,
		lexer.CommandWavWaitEnd,
		lexer.CommandWavGetWaveTime,
		lexer.CommandMenuSetCbkSelect,
		lexer.CommandMenuSetCbkCancel,
		lexer.CommandMenuClearCbkSelect,
		lexer.CommandMenuClearCbkCancel,
		lexer.CommandWav3DSetMode,
		lexer.CommandGrCopyStretch,
		lexer.CommandGrFilterRect,
		lexer.CommandIptClearWheelCount,
		lexer.CommandIptGetWheelCount,
		lexer.CommandMenuGetFontSize,
		lexer.CommandMsgGetFontSize,
		lexer.CommandStrGetCharType,
		lexer.CommandStrGetLengthASCII,
		lexer.CommandSysWinMsgLock,
		lexer.CommandSysWinMsgUnlock,
		lexer.CommandAryCmpCount,
		lexer.CommandAryCmpTrans,
		lexer.CommandGrBlendColorRect,
		lexer.CommandGrDrawFillCircle,
		lexer.CommandMenuSetCbkInit,
		lexer.CommandMenuClearCbkInit,
		lexer.CommandMenu,
		lexer.CommandSysOpenShell,
		lexer.CommandSysAddWebMenu,
		lexer.CommandIptSetMoveCursorTime,
		lexer.CommandIptGetMoveCursorTime,
		lexer.CommandGrBlt,
		lexer.CommandSysGetOSName,
		lexer.CommandPatchEC,
		lexer.CommandMathSetClipWindow,
		lexer.CommandMathClip,
		lexer.CommandStrInputDlg,
		lexer.CommandStrCheckASCII,
		lexer.CommandStrCheckSJIS,
		lexer.CommandStrMessageBox,
		lexer.CommandStrMessageBoxStr,
		lexer.CommandGrCopyUseAMapUseA,
		lexer.CommandGrSetCEParam,
		lexer.CommandGrEffectMoveView,
		lexer.CommandCgSetCacheSize,
		lexer.CommandGaijiSet,
		lexer.CommandGaijiClearAll,
		lexer.CommandMenuGetLatestSelect,
		lexer.CommandLnkIsLink,
		lexer.CommandLnkIsData,
		lexer.CommandFncSetTable,
		lexer.CommandFncSetTableFromStr,
		lexer.CommandFncClearTable,
		lexer.CommandFncCall,
		lexer.CommandFncSetReturnCode,
		lexer.CommandFncGetReturnCode,
		lexer.CommandMsgSetOutputFlag,
		lexer.CommandSaveDeleteFile,
		lexer.CommandWav3DSetUseFlag,
		lexer.CommandWavFadeVolume,
		lexer.CommandPatchEMEN,
		lexer.CommandWmenuEnableMsgSkip,
		lexer.CommandWinGetFlipFlag,
		lexer.CommandCdGetMaxTrack,
		lexer.CommandDlgErrorOkCancel,
		lexer.CommandMenuReduce,
		lexer.CommandMenuGetNumof,
		lexer.CommandMenuGetText,
		lexer.CommandMenuGoto,
		lexer.CommandMenuReturnGoto,
		lexer.CommandMenuFreeShelterDIB,
		lexer.CommandMsgFreeShelterDIB,
		lexer.CommandDataSetPointer,
		lexer.CommandDataGetWORD,
		lexer.CommandDataGetString,
		lexer.CommandDataSkipWORD,
		lexer.CommandDataSkipString,
		lexer.CommandVarGetNumof,
		lexer.CommandPatchG0,
		lexer.CommandRegReadString,
		lexer.CommandFileCheckExist,
		lexer.CommandTimeCheckCurDate,
		lexer.CommandDlgManualProtect,
		lexer.CommandFileCheckDVD,
		lexer.CommandSysReset,

		lexer.CommandTOC,
		lexer.CommandTOS,
		lexer.CommandTPC,
		lexer.CommandTPS,
		lexer.CommandTOP,
		lexer.CommandTPP,
		lexer.CommandAinHH,
		lexer.CommandNewHH,
		lexer.CommandNewLC,
		lexer.CommandNewLE,
		lexer.CommandNewLXG,
		lexer.CommandNewMI,
		lexer.CommandNewMS,
		lexer.CommandNewMT,
		lexer.CommandNewNT,
		lexer.CommandNewQE,
		lexer.CommandNewUP,
		lexer.CommandNewF,
		lexer.CommandAinH,
		lexer.CommandMHH,
		lexer.CommandLXWT,
		lexer.CommandLXWS,
		lexer.CommandLXWE,
		lexer.CommandLXWH,
		lexer.CommandLXWHH,
		lexer.CommandLXF,
		lexer.CommandAinX,
	}
	m := make(map[lexer.Command]uint16, len(order))
	for i, cmd := range order {
		m[cmd] = uint16(0x8000 + i)
	}
	return m
}

// emitVMOpcode writes cmd's assigned opcode bytes, little-endian. A no-op
// for non-synthetic (literal ASCII) commands, which the lexer already wrote
// while classifying the token.
func (c *Context) emitVMOpcode(cmd lexer.Command) {
	op, ok := vmOpcodes[cmd]
	if !ok {
		return
	}
	c.Out.Emit(byte(op))
	c.Out.Emit(byte(op >> 8))
}

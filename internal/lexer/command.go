package lexer

import (
	"fmt"
	"strings"

	"github.com/kichikuou-go/sys35c/internal/buffer"
)

// Command identifies a classified command token. Values for 1-3 upper-case
// ASCII letter commands are the letters packed little-endian (CMD2/CMD3,
// matching the reference compiler's CMD2/CMD3 macros exactly, so that a byte
// value read back out of Command is the same byte the SCO encoder emits).
// Commands with no natural 1-3 letter ASCII form (the lower-case keyword
// commands, and synthetic version-gated rewrites) get identifiers above
// 0x01000000, out of range of any packed 3-letter value (max 0x5a5a5a).
type Command int32

func CMD2(a, b byte) Command { return Command(a) | Command(b)<<8 }
func CMD3(a, b, c byte) Command {
	return Command(a) | Command(b)<<8 | Command(c)<<16
}

const synthetic = 0x01000000

// Synthetic command identifiers: the lower-case keyword commands, the three
// bare keywords handled outside lower_case_command, and the version-gated
// rewrite targets from replace_command.
const (
	CommandIF Command = synthetic + iota
	CommandCONST
	CommandPRAGMA
	CommandDLLCall
	CommandAinMsg

	CommandInc
	CommandDec
	CommandWavLoad
	CommandWavPlay
	CommandWavStop
	CommandWavUnload
	CommandWavIsPlay
	CommandWavFade
	CommandWavIsFade
	CommandWavStopFade
	CommandTrace
	CommandWav3DSetPos
	CommandWav3DCommit
	CommandWav3DGetPos
	CommandWav3DSetPosL
	CommandWav3DGetPosL
	CommandWav3DFadePos
	CommandWav3DIsFadePos
	CommandWav3DStopFadePos
	CommandWav3DFadePosL
	CommandWav3DIsFadePosL
	CommandWav3DStopFadePosL
	CommandSndPlay
	CommandSndStop
	CommandSndIsPlay
	CommandMsg
	CommandWavWaitTime
	CommandWavGetPlayPos
	CommandWavWaitEnd
	CommandWavGetWaveTime
	CommandMenuSetCbkSelect
	CommandMenuSetCbkCancel
	CommandMenuClearCbkSelect
	CommandMenuClearCbkCancel
	CommandWav3DSetMode
	CommandGrCopyStretch
	CommandGrFilterRect
	CommandIptClearWheelCount
	CommandIptGetWheelCount
	CommandMenuGetFontSize
	CommandMsgGetFontSize
	CommandStrGetCharType
	CommandStrGetLengthASCII
	CommandSysWinMsgLock
	CommandSysWinMsgUnlock
	CommandAryCmpCount
	CommandAryCmpTrans
	CommandGrBlendColorRect
	CommandGrDrawFillCircle
	CommandMenuSetCbkInit
	CommandMenuClearCbkInit
	CommandMenu
	CommandSysOpenShell
	CommandSysAddWebMenu
	CommandIptSetMoveCursorTime
	CommandIptGetMoveCursorTime
	CommandGrBlt
	CommandSysGetOSName
	CommandPatchEC
	CommandMathSetClipWindow
	CommandMathClip
	CommandStrInputDlg
	CommandStrCheckASCII
	CommandStrCheckSJIS
	CommandStrMessageBox
	CommandStrMessageBoxStr
	CommandGrCopyUseAMapUseA
	CommandGrSetCEParam
	CommandGrEffectMoveView
	CommandCgSetCacheSize
	CommandGaijiSet
	CommandGaijiClearAll
	CommandMenuGetLatestSelect
	CommandLnkIsLink
	CommandLnkIsData
	CommandFncSetTable
	CommandFncSetTableFromStr
	CommandFncClearTable
	CommandFncCall
	CommandFncSetReturnCode
	CommandFncGetReturnCode
	CommandMsgSetOutputFlag
	CommandSaveDeleteFile
	CommandWav3DSetUseFlag
	CommandWavFadeVolume
	CommandPatchEMEN
	CommandWmenuEnableMsgSkip
	CommandWinGetFlipFlag
	CommandCdGetMaxTrack
	CommandDlgErrorOkCancel
	CommandMenuReduce
	CommandMenuGetNumof
	CommandMenuGetText
	CommandMenuGoto
	CommandMenuReturnGoto
	CommandMenuFreeShelterDIB
	CommandMsgFreeShelterDIB
	CommandDataSetPointer
	CommandDataGetWORD
	CommandDataGetString
	CommandDataSkipWORD
	CommandDataSkipString
	CommandVarGetNumof
	CommandPatchG0
	CommandRegReadString
	CommandFileCheckExist
	CommandTimeCheckCurDate
	CommandDlgManualProtect
	CommandFileCheckDVD
	CommandSysReset

	// Version-gated rewrite targets (replace_command, System 3.8+)
	CommandTOC
	CommandTOS
	CommandTPC
	CommandTPS
	CommandTOP
	CommandTPP
	CommandAinHH
	CommandNewHH
	CommandNewLC
	CommandNewLE
	CommandNewLXG
	CommandNewMI
	CommandNewMS
	CommandNewMT
	CommandNewNT
	CommandNewQE
	CommandNewUP
	CommandNewF
	CommandAinH
	CommandMHH
	CommandLXWT
	CommandLXWS
	CommandLXWE
	CommandLXWH
	CommandLXWHH
	CommandLXF
	CommandAinX
)

// CommandLXWx is the synthetic prefix for the LXW-prefixed command family:
// `LXW` followed by a fourth upper-case letter (e.g. `LXWT`) packs as
// CommandLXWx | letter<<8, mirroring the reference's in-place reuse of the
// packed ASCII code space for a fourth letter that doesn't fit in Command's
// normal 3-letter range.
const CommandLXWx Command = synthetic + 0x10000

// lowerCaseCommands is the lower_case_command keyword table (lexer.c),
// matched case-sensitively against a full identifier-shaped lowercase
// command name.
var lowerCaseCommands = map[string]Command{
	"inc":                 CommandInc,
	"dec":                 CommandDec,
	"wavLoad":             CommandWavLoad,
	"wavPlay":             CommandWavPlay,
	"wavStop":             CommandWavStop,
	"wavUnload":           CommandWavUnload,
	"wavIsPlay":           CommandWavIsPlay,
	"wavFade":             CommandWavFade,
	"wavIsFade":           CommandWavIsFade,
	"wavStopFade":         CommandWavStopFade,
	"trace":               CommandTrace,
	"wav3DSetPos":         CommandWav3DSetPos,
	"wav3DCommit":         CommandWav3DCommit,
	"wav3DGetPos":         CommandWav3DGetPos,
	"wav3DSetPosL":        CommandWav3DSetPosL,
	"wav3DGetPosL":        CommandWav3DGetPosL,
	"wav3DFadePos":        CommandWav3DFadePos,
	"wav3DIsFadePos":      CommandWav3DIsFadePos,
	"wav3DStopFadePos":    CommandWav3DStopFadePos,
	"wav3DFadePosL":       CommandWav3DFadePosL,
	"wav3DIsFadePosL":     CommandWav3DIsFadePosL,
	"wav3DStopFadePosL":   CommandWav3DStopFadePosL,
	"sndPlay":             CommandSndPlay,
	"sndStop":             CommandSndStop,
	"sndIsPlay":           CommandSndIsPlay,
	"msg":                 CommandMsg,
	"wavWaitTime":         CommandWavWaitTime,
	"wavGetPlayPos":       CommandWavGetPlayPos,
	"wavWaitEnd":          CommandWavWaitEnd,
	"wavGetWaveTime":      CommandWavGetWaveTime,
	"menuSetCbkSelect":    CommandMenuSetCbkSelect,
	"menuSetCbkCancel":    CommandMenuSetCbkCancel,
	"menuClearCbkSelect":  CommandMenuClearCbkSelect,
	"menuClearCbkCancel":  CommandMenuClearCbkCancel,
	"wav3DSetMode":        CommandWav3DSetMode,
	"grCopyStretch":       CommandGrCopyStretch,
	"grFilterRect":        CommandGrFilterRect,
	"iptClearWheelCount":  CommandIptClearWheelCount,
	"iptGetWheelCount":    CommandIptGetWheelCount,
	"menuGetFontSize":     CommandMenuGetFontSize,
	"msgGetFontSize":      CommandMsgGetFontSize,
	"strGetCharType":      CommandStrGetCharType,
	"strGetLengthASCII":   CommandStrGetLengthASCII,
	"sysWinMsgLock":       CommandSysWinMsgLock,
	"sysWinMsgUnlock":     CommandSysWinMsgUnlock,
	"aryCmpCount":         CommandAryCmpCount,
	"aryCmpTrans":         CommandAryCmpTrans,
	"grBlendColorRect":    CommandGrBlendColorRect,
	"grDrawFillCircle":    CommandGrDrawFillCircle,
	"menuSetCbkInit":      CommandMenuSetCbkInit,
	"menuClearCbkInit":    CommandMenuClearCbkInit,
	"menu":                CommandMenu,
	"sysOpenShell":        CommandSysOpenShell,
	"sysAddWebMenu":       CommandSysAddWebMenu,
	"iptSetMoveCursorTime": CommandIptSetMoveCursorTime,
	"iptGetMoveCursorTime": CommandIptGetMoveCursorTime,
	"grBlt":               CommandGrBlt,
	"sysGetOSName":        CommandSysGetOSName,
	"patchEC":             CommandPatchEC,
	"mathSetClipWindow":   CommandMathSetClipWindow,
	"mathClip":            CommandMathClip,
	"strInputDlg":         CommandStrInputDlg,
	"strCheckASCII":       CommandStrCheckASCII,
	"strCheckSJIS":        CommandStrCheckSJIS,
	"strMessageBox":       CommandStrMessageBox,
	"strMessageBoxStr":    CommandStrMessageBoxStr,
	"grCopyUseAMapUseA":   CommandGrCopyUseAMapUseA,
	"grSetCEParam":        CommandGrSetCEParam,
	"grEffectMoveView":    CommandGrEffectMoveView,
	"cgSetCacheSize":      CommandCgSetCacheSize,
	"gaijiSet":            CommandGaijiSet,
	"gaijiClearAll":       CommandGaijiClearAll,
	"menuGetLatestSelect": CommandMenuGetLatestSelect,
	"lnkIsLink":           CommandLnkIsLink,
	"lnkIsData":           CommandLnkIsData,
	"fncSetTable":         CommandFncSetTable,
	"fncSetTableFromStr":  CommandFncSetTableFromStr,
	"fncClearTable":       CommandFncClearTable,
	"fncCall":             CommandFncCall,
	"fncSetReturnCode":    CommandFncSetReturnCode,
	"fncGetReturnCode":    CommandFncGetReturnCode,
	"msgSetOutputFlag":    CommandMsgSetOutputFlag,
	"saveDeleteFile":      CommandSaveDeleteFile,
	"wav3DSetUseFlag":     CommandWav3DSetUseFlag,
	"wavFadeVolume":       CommandWavFadeVolume,
	"patchEMEN":           CommandPatchEMEN,
	"wmenuEnableMsgSkip":  CommandWmenuEnableMsgSkip,
	"winGetFlipFlag":      CommandWinGetFlipFlag,
	"cdGetMaxTrack":       CommandCdGetMaxTrack,
	"dlgErrorOkCancel":    CommandDlgErrorOkCancel,
	"menuReduce":          CommandMenuReduce,
	"menuGetNumof":        CommandMenuGetNumof,
	"menuGetText":         CommandMenuGetText,
	"menuGoto":            CommandMenuGoto,
	"menuReturnGoto":      CommandMenuReturnGoto,
	"menuFreeShelterDIB":  CommandMenuFreeShelterDIB,
	"msgFreeShelterDIB":   CommandMsgFreeShelterDIB,
	"dataSetPointer":      CommandDataSetPointer,
	"dataGetWORD":         CommandDataGetWORD,
	"dataGetString":       CommandDataGetString,
	"dataSkipWORD":        CommandDataSkipWORD,
	"dataSkipString":      CommandDataSkipString,
	"varGetNumof":         CommandVarGetNumof,
	"patchG0":             CommandPatchG0,
	"regReadString":       CommandRegReadString,
	"fileCheckExist":      CommandFileCheckExist,
	"timeCheckCurDate":    CommandTimeCheckCurDate,
	"dlgManualProtect":    CommandDlgManualProtect,
	"fileCheckDVD":        CommandFileCheckDVD,
	"sysReset":            CommandSysReset,
}

// SysVer mirrors the reference compiler's version gate used by
// replace_command and the DLL-call/unicode-mode checks in get_command.
type SysVer int

const (
	System35 SysVer = iota
	System36
	System38
	System39
)

// replaceCommand applies the version-gated command rewrite table: a handful
// of 2-3 letter commands get redirected to synthetic "new"/"ain"-prefixed
// opcodes on System 3.8 and later, matching newer bytecode semantics while
// keeping the same source-level mnemonic.
func replaceCommand(cmd Command, sysVer SysVer, ainMessage bool) Command {
	switch cmd {
	case CMD3('T', 'A', 'A'):
		return cmd // COMMAND_TAA observed to equal the packed code itself
	case CMD3('T', 'A', 'B'):
		return cmd
	}
	if sysVer < System38 {
		return cmd
	}
	switch cmd {
	case CMD3('T', 'O', 'C'):
		return CommandTOC
	case CMD3('T', 'O', 'S'):
		return CommandTOS
	case CMD3('T', 'P', 'C'):
		return CommandTPC
	case CMD3('T', 'P', 'S'):
		return CommandTPS
	case CMD3('T', 'O', 'P'):
		return CommandTOP
	case CMD3('T', 'P', 'P'):
		return CommandTPP
	case CMD2('H', 'H'):
		if ainMessage {
			return CommandAinHH
		}
		return CommandNewHH
	case CMD2('L', 'C'):
		return CommandNewLC
	case CMD2('L', 'E'):
		return CommandNewLE
	case CMD3('L', 'X', 'G'):
		return CommandNewLXG
	case CMD2('M', 'I'):
		return CommandNewMI
	case CMD2('M', 'S'):
		return CommandNewMS
	case CMD2('M', 'T'):
		return CommandNewMT
	case CMD2('N', 'T'):
		return CommandNewNT
	case CMD2('Q', 'E'):
		return CommandNewQE
	case CMD2('U', 'P'):
		return CommandNewUP
	case Command('F'):
		return CommandNewF
	case Command('H'):
		if ainMessage {
			return CommandAinH
		}
		return cmd
	case CMD3('M', 'H', 'H'):
		return CommandMHH
	case CommandLXWx | Command('T')<<8:
		return CommandLXWT
	case CommandLXWx | Command('S')<<8:
		return CommandLXWS
	case CommandLXWx | Command('E')<<8:
		return CommandLXWE
	case CommandLXWx | Command('H')<<8:
		return CommandLXWH
	case CommandLXWx | Command('H')<<8 | Command('H')<<16:
		return CommandLXWHH
	case CMD3('L', 'X', 'F'):
		return CommandLXF
	case Command('X'):
		if ainMessage {
			return CommandAinX
		}
		return cmd
	default:
		return cmd
	}
}

// GetCommand classifies and consumes the next command token, emitting its
// packed byte(s) to b (the preprocess pass passes a nil Buffer). Matches
// get_command in lexer.c.
func (l *Lexer) GetCommand(b *buffer.Buffer, sysVer SysVer, unicode, ainMessage bool) (Command, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return 0, err
	}
	commandTop := l.Pos

	// DLL call: System 3.9 `name.func` syntax.
	if sysVer == System39 && isAlpha(l.cur()) {
		p := l.Pos + 1
		for isAlnum(l.byteAt(p)) {
			p++
		}
		if l.byteAt(p) == '.' {
			return CommandDLLCall, nil
		}
	}

	c := l.cur()
	if c == 0 || c == '}' || c == '>' {
		return Command(c), nil
	}
	if c == 'A' || c == 'R' {
		l.Pos++
		b.Emit(c)
		return Command(c), nil
	}
	if isUpper(c) {
		cmd := Command(c)
		l.Pos++
		if isUpper(l.cur()) {
			cmd |= Command(l.cur()) << 8
			l.Pos++
		}
		if isUpper(l.cur()) {
			cmd |= Command(l.cur()) << 16
			l.Pos++
		}
		if cmd == CMD3('L', 'X', 'W') && isUpper(l.cur()) {
			cmd = CommandLXWx | Command(l.cur())<<8
			l.Pos++
			if isUpper(l.cur()) {
				cmd |= Command(l.cur()) << 16
				l.Pos++
			}
		}
		if isUpper(l.cur()) {
			end := commandTop + 4
			if end > len(l.Buf) {
				end = len(l.Buf)
			}
			return 0, errAt(commandTop, "Unknown command %s", l.Buf[commandTop:end])
		}
		if cmd == Command('N') && strings.IndexByte(`+-*/><=\&|^~`, l.cur()) >= 0 {
			cmd |= Command(l.cur()) << 8
			l.Pos++
		}
		if cmd == CMD2('N', 'D') && strings.IndexByte(`+-*/`, l.cur()) >= 0 {
			cmd |= Command(l.cur()) << 16
			l.Pos++
		}
		// ZU is deprecated and silently consumed, emitting no bytecode.
		if cmd == CMD2('Z', 'U') {
			return cmd, nil
		}
		cmd = replaceCommand(cmd, sysVer, ainMessage)
		emitCommand(b, cmd)
		return cmd, nil
	}
	if isLower(c) {
		for isAlnum(l.byteAt(l.Pos + 1)) {
			l.Pos++
		}
		l.Pos++
		name := l.Buf[commandTop:l.Pos]
		switch name {
		case "if":
			return CommandIF, nil
		case "const":
			return CommandCONST, nil
		case "pragma":
			return CommandPRAGMA, nil
		}
		if cmd, ok := lowerCaseCommands[name]; ok {
			emitCommand(b, cmd)
			return cmd, nil
		}
		return 0, errAt(commandTop, "Unknown command %s", name)
	}
	l.Pos++
	return Command(c), nil
}

// emitCommand writes a command's packed ASCII bytes to the output buffer.
// Synthetic command identifiers (keyword/rewritten commands) are resolved by
// package compile into a two-byte VM opcode when it assigns VM opcodes; here
// we only emit the literal 1-3 ASCII bytes for commands still in that form.
func emitCommand(b *buffer.Buffer, cmd Command) {
	if cmd >= synthetic {
		return
	}
	b.Emit(byte(cmd))
	if cmd>>8 != 0 {
		b.Emit(byte(cmd >> 8))
	}
	if cmd>>16 != 0 {
		b.Emit(byte(cmd >> 16))
	}
}

func isAlpha(c byte) bool { return isUpper(c) || isLower(c) }

func (c Command) String() string {
	if c < synthetic {
		s := []byte{byte(c)}
		if c>>8 != 0 {
			s = append(s, byte(c>>8))
		}
		if c>>16 != 0 {
			s = append(s, byte(c>>16))
		}
		return string(s)
	}
	return fmt.Sprintf("Command(%#x)", int32(c))
}
